package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-registration-bot/internal/domain"
	"telegram-registration-bot/internal/domain/ports/adapter"
	"telegram-registration-bot/internal/infra/metrics"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (d *Dispatcher) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start": d.handleStartCommand,
		"help":  d.handleHelpCommand,

		// These handlers are wrapped in the adminOnly middleware.
		"count":  d.adminOnly(d.handleCountCommand),
		"list":   d.adminOnly(d.handleListCommand),
		"notify": d.adminOnly(d.handleNotifyCommand),
	}
}

// adminOnly guards a handler behind the single configured administrator id.
// Unauthorized attempts get a visible notice and produce no audit entry.
func (d *Dispatcher) adminOnly(next commandHandler) commandHandler {
	return func(ctx context.Context, message *tgbotapi.Message) error {
		if !d.isAdmin(message.From.ID) {
			metrics.IncAdminCommand("/"+message.Command(), "unauthorized")
			return d.client.SendMessage(ctx, message.Chat.ID, msgUnauthorized)
		}
		metrics.IncAdminCommand("/"+message.Command(), "authorized")
		return next(ctx, message)
	}
}

// handleStartCommand runs the first-contact flow: membership check, then
// either the already-registered notice or the registration offer.
func (d *Dispatcher) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	from := message.From
	d.log.Info().Int64("tg_id", from.ID).Str("username", from.UserName).Msg("/start received")

	registered, err := d.regUC.IsRegistered(ctx, from.ID)
	if err != nil {
		d.log.Error().Err(err).Int64("tg_id", from.ID).Msg("membership check failed on /start")
		return d.client.SendMessage(ctx, message.Chat.ID, msgGenericError)
	}
	if registered {
		metrics.IncRegistration("already_registered")
		return d.client.SendMessage(ctx, message.Chat.ID, msgAlreadyRegistered)
	}

	rows := [][]adapter.InlineButton{{
		{Text: "✅ Yes, register me!", Data: fmt.Sprintf("%s%d", cbAcceptPrefix, from.ID)},
		{Text: "❌ No, thanks.", Data: cbDecline},
	}}
	if d.cfg.AdminUsername != "" {
		rows = append(rows, []adapter.InlineButton{
			{Text: "❓ Contact Admin", URL: "https://t.me/" + d.cfg.AdminUsername},
		})
	}
	return d.client.SendButtons(ctx, message.Chat.ID,
		registrationPrompt(from.ID, from.UserName, from.FirstName), rows)
}

func (d *Dispatcher) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) error {
	return d.client.SendMessage(ctx, message.Chat.ID, helpMessage(d.isAdmin(message.From.ID)))
}

func (d *Dispatcher) handleCountCommand(ctx context.Context, message *tgbotapi.Message) error {
	n, err := d.adminUC.Count(ctx, message.From.ID)
	if err != nil {
		return d.client.SendMessage(ctx, message.Chat.ID, msgCountError)
	}
	return d.client.SendMessage(ctx, message.Chat.ID, fmt.Sprintf(msgCountResult, n))
}

func (d *Dispatcher) handleListCommand(ctx context.Context, message *tgbotapi.Message) error {
	refs, err := d.adminUC.List(ctx, message.From.ID)
	if err != nil {
		return d.client.SendMessage(ctx, message.Chat.ID, msgListError)
	}
	if len(refs) == 0 {
		return d.client.SendMessage(ctx, message.Chat.ID, msgNoUsers)
	}
	return d.client.SendMessage(ctx, message.Chat.ID, formatUserList(refs))
}

func (d *Dispatcher) handleNotifyCommand(ctx context.Context, message *tgbotapi.Message) error {
	report, err := d.adminUC.Notify(ctx, message.From.ID, message.CommandArguments())
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return d.client.SendMessage(ctx, message.Chat.ID, msgNotifyUsage)
	case errors.Is(err, domain.ErrNotFound):
		return d.client.SendMessage(ctx, message.Chat.ID, msgNoUsersNotify)
	case err != nil:
		return d.client.SendMessage(ctx, message.Chat.ID, msgNotifyError)
	}
	return d.client.SendMessage(ctx, message.Chat.ID,
		fmt.Sprintf(msgBroadcastDone, report.Sent, report.Failed))
}
