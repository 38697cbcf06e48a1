package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-registration-bot/internal/domain"
	"telegram-registration-bot/internal/infra/metrics"
)

// handleCallback resolves a registration prompt button press by editing the
// prompt message in place.
func (d *Dispatcher) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the telegram spinner when we return
	defer func() { _ = d.client.AnswerCallback(ctx, query.ID) }()

	if query.Message == nil || query.Message.Chat == nil {
		return nil
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch {
	case query.Data == cbDecline:
		d.log.Info().Int64("tg_id", query.From.ID).Msg("registration declined")
		metrics.IncRegistration("declined")
		return d.client.EditMessageText(ctx, chatID, messageID, msgDeclineAck)
	case strings.HasPrefix(query.Data, cbAcceptPrefix):
		return d.handleAccept(ctx, query, chatID, messageID)
	default:
		return nil
	}
}

func (d *Dispatcher) handleAccept(ctx context.Context, query *tgbotapi.CallbackQuery, chatID int64, messageID int) error {
	from := query.From

	intendedID, err := strconv.ParseInt(strings.TrimPrefix(query.Data, cbAcceptPrefix), 10, 64)
	if err != nil {
		d.log.Warn().Str("data", query.Data).Msg("malformed accept callback data")
		return d.client.EditMessageText(ctx, chatID, messageID, msgGenericError)
	}

	// The prompt carries the id it was rendered for; anyone else pressing the
	// button is turned away without a state transition.
	if intendedID != from.ID {
		d.log.Warn().Int64("tg_id", from.ID).Int64("prompt_tg_id", intendedID).
			Msg("accept pressed by a different user")
		metrics.IncRegistration("rejected")
		return d.client.EditMessageText(ctx, chatID, messageID, msgNotForYou)
	}

	_, err = d.regUC.Register(ctx, from.ID, from.UserName, from.FirstName)
	if errors.Is(err, domain.ErrAlreadyExists) {
		metrics.IncRegistration("already_registered")
		return d.client.EditMessageText(ctx, chatID, messageID, msgAlreadyRegistered)
	}
	if err != nil {
		d.log.Error().Err(err).Int64("tg_id", from.ID).Msg("registration failed")
		metrics.IncRegistration("failed")
		return d.client.EditMessageText(ctx, chatID, messageID, msgRegistrationError)
	}

	metrics.IncRegistration("registered")
	return d.client.EditMessageText(ctx, chatID, messageID, registeredConfirmation(from.FirstName))
}
