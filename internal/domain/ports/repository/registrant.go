package repository

import (
	"context"

	"telegram-registration-bot/internal/domain/model"
)

// -----------------------------
// Registrations
// -----------------------------

type RegistrantRepository interface {
	// Exists reports membership. A missing row is the expected false case,
	// not an error; a non-nil error always means the store call itself failed.
	Exists(ctx context.Context, telegramID int64) (bool, error)
	// Insert persists a new registrant. A duplicate telegram_id surfaces as
	// domain.ErrAlreadyExists.
	Insert(ctx context.Context, r *model.Registrant) error
	// Count returns the exact number of registered users.
	Count(ctx context.Context) (int, error)
	// List returns the full registered set ordered by registration time.
	List(ctx context.Context) ([]model.RegistrantRef, error)
}
