package repository

import (
	"context"

	"telegram-registration-bot/internal/domain/model"
)

// -----------------------------
// Admin audit log
// -----------------------------

type AdminLogRepository interface {
	// Append writes one audit record. Entries are write-once; nothing in the
	// bot ever reads them back.
	Append(ctx context.Context, e *model.AdminLogEntry) error
}
