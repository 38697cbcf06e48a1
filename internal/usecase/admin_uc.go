package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"telegram-registration-bot/internal/domain"
	"telegram-registration-bot/internal/domain/model"
	"telegram-registration-bot/internal/domain/ports/adapter"
	"telegram-registration-bot/internal/domain/ports/repository"
	"telegram-registration-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ AdminUseCase = (*adminUC)(nil)

// BroadcastReport summarizes one /notify run. Per-recipient failures never
// abort the batch; they are tallied here and recorded in the audit log.
type BroadcastReport struct {
	Sent      int
	Failed    int
	FailedIDs []int64
}

// AdminUseCase exposes the three admin operations. Authorization happens
// upstream in the dispatcher; every invocation that reaches this layer
// appends exactly one audit entry, success or failure.
type AdminUseCase interface {
	Count(ctx context.Context, adminID int64) (int, error)
	List(ctx context.Context, adminID int64) ([]model.RegistrantRef, error)
	// Notify broadcasts text to every registrant. Empty text returns
	// domain.ErrInvalidArgument without touching the store; an empty
	// registered set returns domain.ErrNotFound.
	Notify(ctx context.Context, adminID int64, text string) (*BroadcastReport, error)
}

type adminUC struct {
	regs  repository.RegistrantRepository
	audit repository.AdminLogRepository
	bot   adapter.BotAdapter
	pause time.Duration
	log   *zerolog.Logger
}

func NewAdminUseCase(
	regs repository.RegistrantRepository,
	audit repository.AdminLogRepository,
	bot adapter.BotAdapter,
	pause time.Duration,
	logger *zerolog.Logger,
) *adminUC {
	return &adminUC{
		regs:  regs,
		audit: audit,
		bot:   bot,
		pause: pause,
		log:   logger,
	}
}

func (a *adminUC) Count(ctx context.Context, adminID int64) (int, error) {
	defer logging.TraceDuration(a.log, "AdminUC.Count")()

	n, err := a.regs.Count(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to count registered users")
		a.appendLog(ctx, adminID, model.ActionCountUsersFailed, "Database error fetching count.")
		return 0, err
	}
	a.appendLog(ctx, adminID, model.ActionCountUsers, fmt.Sprintf("Returned count: %d", n))
	return n, nil
}

func (a *adminUC) List(ctx context.Context, adminID int64) ([]model.RegistrantRef, error) {
	defer logging.TraceDuration(a.log, "AdminUC.List")()

	refs, err := a.regs.List(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to list registered users")
		a.appendLog(ctx, adminID, model.ActionListUsersFailed, "Database error fetching list.")
		return nil, err
	}
	if len(refs) == 0 {
		a.appendLog(ctx, adminID, model.ActionListUsers, "No registered users.")
		return refs, nil
	}
	a.appendLog(ctx, adminID, model.ActionListUsers, fmt.Sprintf("Returned %d users.", len(refs)))
	return refs, nil
}

func (a *adminUC) Notify(ctx context.Context, adminID int64, text string) (*BroadcastReport, error) {
	defer logging.TraceDuration(a.log, "AdminUC.Notify")()

	text = strings.TrimSpace(text)
	if text == "" {
		a.appendLog(ctx, adminID, model.ActionNotifyFailed, "No message text provided.")
		return nil, domain.ErrInvalidArgument
	}

	refs, err := a.regs.List(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to list users for broadcast")
		a.appendLog(ctx, adminID, model.ActionNotifyFailed, "Database error fetching user list for broadcast.")
		return nil, err
	}
	if len(refs) == 0 {
		a.appendLog(ctx, adminID, model.ActionNotifyNoUsers, "No registered users to send broadcast to.")
		return nil, domain.ErrNotFound
	}

	report := a.broadcast(ctx, refs, text)

	failedIDs := "N/A"
	if len(report.FailedIDs) > 0 {
		parts := make([]string, 0, len(report.FailedIDs))
		for _, id := range report.FailedIDs {
			parts = append(parts, strconv.FormatInt(id, 10))
		}
		failedIDs = strings.Join(parts, ", ")
	}
	a.appendLog(ctx, adminID, model.ActionBroadcast, fmt.Sprintf(
		"Message: %q | Sent: %d, Failed: %d (IDs: %s)",
		text, report.Sent, report.Failed, failedIDs,
	))
	return report, nil
}

// broadcast sends strictly sequentially with a fixed pause between sends.
// Ordering and Telegram's rate limits matter more than throughput here, so
// no fan-out; one failed recipient never aborts the rest.
func (a *adminUC) broadcast(ctx context.Context, refs []model.RegistrantRef, text string) *BroadcastReport {
	report := &BroadcastReport{}

	var ticker *time.Ticker
	if a.pause > 0 {
		ticker = time.NewTicker(a.pause)
		defer ticker.Stop()
	}

	a.log.Info().Int("user_count", len(refs)).Msg("starting broadcast")
	for i, ref := range refs {
		if i > 0 && ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				a.log.Warn().Err(ctx.Err()).Int("sent", report.Sent).Msg("broadcast interrupted")
				return report
			}
		}
		if err := a.bot.SendMessage(ctx, ref.TelegramID, text); err != nil {
			a.log.Warn().Err(err).Int64("tg_id", ref.TelegramID).Msg("failed to send broadcast message")
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, ref.TelegramID)
			continue
		}
		report.Sent++
	}
	a.log.Info().Int("sent", report.Sent).Int("failed", report.Failed).Msg("broadcast finished")
	return report
}

// appendLog is fire-and-forget: a failed audit write is logged locally and
// never surfaced to the admin.
func (a *adminUC) appendLog(ctx context.Context, adminID int64, action, details string) {
	entry, err := model.NewAdminLogEntry(adminID, action, details)
	if err != nil {
		a.log.Error().Err(err).Str("action", action).Msg("invalid admin log entry")
		return
	}
	if err := a.audit.Append(ctx, entry); err != nil {
		a.log.Error().Err(err).Str("action", action).Msg("failed to append admin log")
	}
}
