package web

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-registration-bot/internal/infra/metrics"
)

// handleWebhook ingests one Telegram update pushed over HTTP. Telegram
// retries deliveries that are not acknowledged, so the response is a 200
// regardless of what happened inside: a malformed body or a failing handler
// must not cause redelivery of the same update.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.log.Warn().Err(err).Msg("malformed webhook body")
		metrics.IncWebhookUpdate("malformed")
		writeJSON(w, map[string]string{"status": "ok"})
		return
	}

	if err := s.dispatcher.HandleUpdate(r.Context(), update); err != nil {
		s.log.Error().Err(err).Msg("webhook update dispatch failed")
		metrics.IncWebhookUpdate("dispatch_error")
	} else {
		metrics.IncWebhookUpdate("ok")
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleWebhookInfo answers non-POST probes of the webhook path.
func (s *Server) handleWebhookInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"message": "This is the Telegram Bot webhook endpoint. Please send POST requests with Telegram updates.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleStats serves the registered-user count for external dashboards.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	n, err := s.regs.Count(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("stats: failed to count registrations")
		http.Error(w, "Failed to get stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		RegisteredUsers int `json:"registered_users"`
	}{RegisteredUsers: n})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
