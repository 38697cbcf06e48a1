package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// BotAdapter is the outbound messaging capability used by the use cases.
// The full client (editing, callbacks, update feeds) stays behind the
// telegram infra package; workflows only ever need to send.
type BotAdapter interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	SendButtons(ctx context.Context, telegramID int64, text string, rows [][]InlineButton) error
}
