package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-registration-bot/internal/config"
	"telegram-registration-bot/internal/domain/ports/adapter"
	red "telegram-registration-bot/internal/infra/redis"
	"telegram-registration-bot/internal/usecase"
)

// botClient is the outbound surface the dispatcher needs. RealBotAdapter
// implements it; tests substitute a recorder.
type botClient interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	SendButtons(ctx context.Context, telegramID int64, text string, rows [][]adapter.InlineButton) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// UpdateSource feeds Telegram updates into Run. In polling mode this is the
// RealBotAdapter; in webhook mode updates arrive through HandleUpdate
// directly.
type UpdateSource interface {
	Updates(ctx context.Context) tgbotapi.UpdatesChannel
}

// Dispatcher maps incoming updates to the registration and admin workflows.
// It is the single entry point from the transport; no fault may propagate
// past it unanswered.
type Dispatcher struct {
	cfg     *config.BotConfig
	client  botClient
	regUC   usecase.RegistrationUseCase
	adminUC usecase.AdminUseCase
	limiter *red.RateLimiter // nil disables rate limiting
	log     *zerolog.Logger
}

func NewDispatcher(
	cfg *config.BotConfig,
	client botClient,
	regUC usecase.RegistrationUseCase,
	adminUC usecase.AdminUseCase,
	limiter *red.RateLimiter,
	logger *zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		client:  client,
		regUC:   regUC,
		adminUC: adminUC,
		limiter: limiter,
		log:     logger,
	}
}

// Run consumes updates from src with a pool of workers until ctx is
// canceled. Each update is handled in isolation.
func (d *Dispatcher) Run(ctx context.Context, src UpdateSource) error {
	updates := src.Updates(ctx)

	workers := d.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					if err := d.HandleUpdate(ctx, update); err != nil {
						d.log.Error().Err(err).Int("worker", workerID).Msg("error handling update")
					}
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	// Feeder goroutine: move updates from the polling channel to the workers.
	go func() {
		defer close(updateChan)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	return ctx.Err()
}

// HandleUpdate dispatches one update. Faults are answered with the generic
// failure text rather than left to propagate to the transport.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error().Interface("panic", rec).Msg("panic while handling update")
			if chatID := chatIDOf(update); chatID != 0 {
				_ = d.client.SendMessage(ctx, chatID, msgGenericError)
			}
			err = fmt.Errorf("handle update: panic: %v", rec)
		}
	}()

	// ----- Inline button callbacks -----
	if update.CallbackQuery != nil {
		return d.handleCallback(ctx, update.CallbackQuery)
	}

	// ----- Regular messages -----
	message := update.Message
	if message == nil || message.From == nil || message.Chat == nil {
		return nil
	}

	command := "message"
	if message.IsCommand() {
		command = "/" + message.Command()
	}
	if d.limiter != nil {
		allowed, lerr := d.limiter.Allow(ctx, red.UserCommandKey(message.From.ID, command), 20, time.Minute)
		if lerr != nil {
			// Availability over strictness: a limiter outage never blocks users.
			d.log.Warn().Err(lerr).Msg("rate limit check failed")
		} else if !allowed {
			return d.client.SendMessage(ctx, message.Chat.ID, msgRateLimited)
		}
	}

	if message.IsCommand() {
		handler, ok := d.commandRoutes()[message.Command()]
		if !ok {
			return nil
		}
		if herr := handler(ctx, message); herr != nil {
			d.log.Error().Err(herr).Str("command", message.Command()).Int64("tg_id", message.From.ID).
				Msg("command handler failed")
			return d.client.SendMessage(ctx, message.Chat.ID, msgGenericError)
		}
		return nil
	}

	if strings.TrimSpace(message.Text) != "" {
		return d.client.SendMessage(ctx, message.Chat.ID, msgHint)
	}
	return nil
}

func (d *Dispatcher) isAdmin(tgID int64) bool {
	return d.cfg.AdminID != 0 && tgID == d.cfg.AdminID
}

func chatIDOf(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.Chat != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}
