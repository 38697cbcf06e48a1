package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-registration-bot/internal/domain"
	"telegram-registration-bot/internal/domain/model"
	"telegram-registration-bot/internal/domain/ports/repository"
)

var _ repository.RegistrantRepository = (*registrantRepo)(nil)

type registrantRepo struct {
	pool *pgxpool.Pool
}

func NewRegistrantRepo(pool *pgxpool.Pool) repository.RegistrantRepository {
	return &registrantRepo{pool: pool}
}

func (r *registrantRepo) Exists(ctx context.Context, telegramID int64) (bool, error) {
	// SELECT EXISTS(...) is more efficient than SELECT COUNT(*) as it stops on the first match.
	const q = `SELECT EXISTS(SELECT 1 FROM registrations WHERE telegram_id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, telegramID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}

func (r *registrantRepo) Insert(ctx context.Context, reg *model.Registrant) error {
	const q = `
INSERT INTO registrations (telegram_id, username, first_name, registered_at)
VALUES ($1, NULLIF($2, ''), $3, $4)`

	// No upsert: rows are write-once and the PK on telegram_id is the only
	// guard against the re-check/insert race between two accept clicks.
	_, err := r.pool.Exec(ctx, q, reg.TelegramID, reg.Username, reg.FirstName, reg.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *registrantRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *registrantRepo) List(ctx context.Context) ([]model.RegistrantRef, error) {
	const q = `
SELECT telegram_id, COALESCE(username, '')
  FROM registrations
 ORDER BY registered_at, telegram_id`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []model.RegistrantRef
	for rows.Next() {
		var ref model.RegistrantRef
		if err := rows.Scan(&ref.TelegramID, &ref.Username); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return out, nil
}
