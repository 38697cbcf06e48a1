package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"telegram-registration-bot/internal/config"
	pg "telegram-registration-bot/internal/infra/db/postgres"
	"telegram-registration-bot/internal/infra/logging"
	"telegram-registration-bot/internal/infra/metrics"
	red "telegram-registration-bot/internal/infra/redis"
	tele "telegram-registration-bot/internal/infra/telegram"
	"telegram-registration-bot/internal/infra/web"
	"telegram-registration-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}
	if cfg.Bot.AdminID == 0 {
		logger.Warn().Msg("bot.admin_id not set; admin commands will not function")
	}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	regRepo := pg.NewRegistrantRepo(pool)
	auditRepo := pg.NewAdminLogRepo(pool)

	// ---- Redis (optional, rate limiting only) ----
	var limiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
	}

	// ---- Telegram ----
	bot, err := tele.NewRealBotAdapter(cfg.Bot.Token, logger)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	// ---- Use cases ----
	regUC := usecase.NewRegistrationUseCase(regRepo, logger)
	adminUC := usecase.NewAdminUseCase(regRepo, auditRepo, bot, cfg.Broadcast.Pause, logger)

	dispatcher := tele.NewDispatcher(&cfg.Bot, bot, regUC, adminUC, limiter, logger)

	// ---- HTTP server (webhook, health, metrics, stats) ----
	metrics.MustRegister()
	srv := web.NewServer(&cfg.Web, dispatcher, regRepo, logger)
	go func() {
		logger.Info().Int("port", cfg.Web.Port).Str("webhook_path", cfg.Web.WebhookPath).
			Msg("http server listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Update source ----
	if strings.ToLower(cfg.Bot.Mode) == "webhook" {
		logger.Info().Msg("webhook mode: updates arrive over HTTP")
	} else {
		go func() {
			if err := dispatcher.Run(ctx, bot); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
}
