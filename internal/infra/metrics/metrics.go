package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var adminCommandTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_command_total",
		Help: "Tracks attempts to use admin commands.",
	},
	[]string{"command", "status"}, // status: 'authorized', 'unauthorized'
)

var registrationTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "registration_total",
		Help: "Registration flow outcomes.",
	},
	[]string{"outcome"}, // 'registered', 'already_registered', 'declined', 'rejected', 'failed'
)

var telegramSendTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "telegram_send_total",
		Help: "Outbound Telegram message sends by result.",
	},
	[]string{"result"}, // 'ok', 'failed'
)

var webhookUpdateTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_update_total",
		Help: "Webhook update deliveries by decode/dispatch status.",
	},
	[]string{"status"}, // 'ok', 'malformed', 'dispatch_error'
)

func init() {
	register(adminCommandTotal, registrationTotal, telegramSendTotal, webhookUpdateTotal)
}

func IncAdminCommand(command, status string) {
	adminCommandTotal.WithLabelValues(norm(command), norm(status)).Inc()
}

func IncRegistration(outcome string) {
	registrationTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncTelegramSend(result string) {
	telegramSendTotal.WithLabelValues(norm(result)).Inc()
}

func IncWebhookUpdate(status string) {
	webhookUpdateTotal.WithLabelValues(norm(status)).Inc()
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
