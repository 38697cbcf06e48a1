package model

import (
	"time"

	"telegram-registration-bot/internal/domain"
)

// Registrant is a domain entity representing a Telegram user who accepted
// the registration offer. Rows are written once and never updated; the
// username and first name are captured as they were at registration time.
type Registrant struct {
	TelegramID   int64
	Username     string // empty when the user has no public @username
	FirstName    string
	RegisteredAt time.Time
}

func NewRegistrant(tgID int64, username, firstName string) (*Registrant, error) {
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if firstName == "" {
		firstName = "N/A"
	}
	return &Registrant{
		TelegramID:   tgID,
		Username:     username,
		FirstName:    firstName,
		RegisteredAt: time.Now(),
	}, nil
}

// RegistrantRef is the projection returned by list queries: just enough to
// address a user on Telegram and render them in the admin list.
type RegistrantRef struct {
	TelegramID int64
	Username   string
}
