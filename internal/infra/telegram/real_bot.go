package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-registration-bot/internal/domain/ports/adapter"
	"telegram-registration-bot/internal/infra/metrics"
)

// Compile-time check
var _ adapter.BotAdapter = (*RealBotAdapter)(nil)

// RealBotAdapter wraps the tgbotapi client with the send/edit/acknowledge
// primitives the dispatcher and use cases need. It holds no routing logic.
type RealBotAdapter struct {
	bot *tgbotapi.BotAPI
	log *zerolog.Logger
}

func NewRealBotAdapter(token string, logger *zerolog.Logger) (*RealBotAdapter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("bot_username", bot.Self.UserName).Msg("authorized on Telegram")
	return &RealBotAdapter{bot: bot, log: logger}, nil
}

// Updates starts long polling and returns the update channel. Polling stops
// when ctx is canceled.
func (r *RealBotAdapter) Updates(ctx context.Context) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	ch := r.bot.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		r.bot.StopReceivingUpdates()
	}()
	return ch
}

func (r *RealBotAdapter) SendMessage(ctx context.Context, telegramID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(telegramID, text)
	if _, err := r.bot.Send(msg); err != nil {
		metrics.IncTelegramSend("failed")
		return err
	}
	metrics.IncTelegramSend("ok")
	return nil
}

// SendButtons sends a Markdown message with inline buttons.
// - If btn.URL is set, the button opens a link
// - Else if btn.Data is set, the button sends callback data
// - Else a safe fallback uses btn.Text as callback data
func (r *RealBotAdapter) SendButtons(
	ctx context.Context,
	telegramID int64,
	text string,
	rows [][]adapter.InlineButton,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			kbRow = append(kbRow, kb)
		}
		kbRows = append(kbRows, kbRow)
	}

	msg := tgbotapi.NewMessage(telegramID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kbRows...)

	if _, err := r.bot.Send(msg); err != nil {
		metrics.IncTelegramSend("failed")
		return err
	}
	metrics.IncTelegramSend("ok")
	return nil
}

// EditMessageText replaces the text of a previously sent message, used to
// resolve the registration prompt in place.
func (r *RealBotAdapter) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	_, err := r.bot.Send(edit)
	return err
}

// AnswerCallback stops the client-side spinner on an inline button press.
func (r *RealBotAdapter) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}
