package model

import (
	"time"

	"telegram-registration-bot/internal/domain"
)

// Audit action tags. The log is append-only and is never read back by the
// bot itself; tags keep external inspection greppable.
const (
	ActionCountUsers       = "count_users"
	ActionCountUsersFailed = "count_users_failed"
	ActionListUsers        = "list_users"
	ActionListUsersFailed  = "list_users_failed"
	ActionBroadcast        = "broadcast_message"
	ActionNotifyFailed     = "notify_failed"
	ActionNotifyNoUsers    = "notify_attempt_no_users"
)

// AdminLogEntry records one admin operation and its outcome. The row id and
// created_at are assigned by the store on insert.
type AdminLogEntry struct {
	AdminTelegramID int64
	Action          string
	Details         string
	CreatedAt       time.Time
}

func NewAdminLogEntry(adminID int64, action, details string) (*AdminLogEntry, error) {
	if adminID <= 0 || action == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &AdminLogEntry{
		AdminTelegramID: adminID,
		Action:          action,
		Details:         details,
	}, nil
}
