package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-registration-bot/internal/config"
	"telegram-registration-bot/internal/domain/ports/repository"
)

// Dispatcher is the inbound side of the bot: the webhook handler feeds
// decoded updates into it.
type Dispatcher interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

type Server struct {
	cfg        *config.WebConfig
	dispatcher Dispatcher
	regs       repository.RegistrantRepository
	server     *http.Server
	log        *zerolog.Logger
}

func NewServer(
	cfg *config.WebConfig,
	dispatcher Dispatcher,
	regs repository.RegistrantRepository,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		regs:       regs,
		log:        logger,
	}
}

// Handler builds the router. Exposed separately from Start for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post(s.cfg.WebhookPath, s.handleWebhook)
	r.Get(s.cfg.WebhookPath, s.handleWebhookInfo)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/api/v1/stats", s.authMiddleware(s.handleStats))

	return r
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Handler(),
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
