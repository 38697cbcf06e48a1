package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-registration-bot/internal/domain/model"
	"telegram-registration-bot/internal/domain/ports/repository"
)

var _ repository.AdminLogRepository = (*adminLogRepo)(nil)

type adminLogRepo struct {
	pool *pgxpool.Pool
}

func NewAdminLogRepo(pool *pgxpool.Pool) repository.AdminLogRepository {
	return &adminLogRepo{pool: pool}
}

func (r *adminLogRepo) Append(ctx context.Context, e *model.AdminLogEntry) error {
	const q = `
INSERT INTO admin_logs (id, admin_telegram_id, action, details)
VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, q, uuid.NewString(), e.AdminTelegramID, e.Action, e.Details)
	if err != nil {
		return fmt.Errorf("append admin log: %w", err)
	}
	return nil
}
