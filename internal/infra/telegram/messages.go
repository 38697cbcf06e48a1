package telegram

import (
	"fmt"
	"strings"

	"telegram-registration-bot/internal/domain/model"
)

// Callback data tokens carried by the registration prompt buttons. The
// accept token embeds the id of the user the prompt was rendered for.
const (
	cbAcceptPrefix = "register_yes:"
	cbDecline      = "register_no"
)

const (
	msgAlreadyRegistered = "You’re already registered. I’ll notify you when the app is live."
	msgGenericError      = "Something went wrong, please try again later."
	msgRegistrationError = "Something went wrong during registration, please try again later."
	msgDeclineAck        = "No problem! You can type /start again anytime if you change your mind."
	msgNotForYou         = "This registration prompt is not for you."
	msgHint              = "I'm a registration bot! Please use commands like /start or /help."
	msgRateLimited       = "Rate limit exceeded. Please try again later."

	msgUnauthorized   = "Unauthorized access. This command is for admins only."
	msgCountError     = "Something went wrong while fetching user count, please try again later."
	msgListError      = "Something went wrong while fetching the user list, please try again later."
	msgNotifyError    = "Something went wrong while fetching the user list for notification, please try again later."
	msgNoUsers        = "No users are currently registered."
	msgNoUsersNotify  = "No users are currently registered to notify."
	msgNotifyUsage    = "Please provide a message to send. Example: `/notify The app is now live!`"
	msgCountResult    = "Currently, %d users are registered."
	msgBroadcastDone  = "Broadcast complete! Sent to %d users. Failed for %d users."
	msgRegisteredTmpl = "🎉 Great! Thanks for registering, %s! I’ll notify you when the Portfolio Showcase app is ready."
)

// registrationPrompt renders the offer shown to an unregistered user, echoing
// exactly the fields that will be stored on accept.
func registrationPrompt(tgID int64, username, firstName string) string {
	greeting := firstName
	if greeting == "" {
		greeting = "there"
	}
	handle := "`Not available` (You can set one in Telegram settings!)"
	if username != "" {
		handle = fmt.Sprintf("`@%s`", username)
	}
	name := firstName
	if name == "" {
		name = "Not provided"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! I see you're not yet registered.\n\n", greeting)
	b.WriteString("I'll collect the following information to keep you updated:\n")
	fmt.Fprintf(&b, "• Your Telegram ID: `%d`\n", tgID)
	fmt.Fprintf(&b, "• Your Username: %s\n", handle)
	fmt.Fprintf(&b, "• Your First Name: `%s`\n\n", name)
	b.WriteString("Would you like to register for updates about the Portfolio Showcase app?")
	return b.String()
}

// formatUserList renders the /list reply: one `- <id> (@<handle>)` line per
// registrant, handle omitted when the user has none.
func formatUserList(refs []model.RegistrantRef) string {
	var b strings.Builder
	b.WriteString("Registered Users:")
	for _, ref := range refs {
		fmt.Fprintf(&b, "\n- %d", ref.TelegramID)
		if ref.Username != "" {
			fmt.Fprintf(&b, " (@%s)", ref.Username)
		}
	}
	return b.String()
}

func registeredConfirmation(firstName string) string {
	if firstName == "" {
		firstName = "there"
	}
	return fmt.Sprintf(msgRegisteredTmpl, firstName)
}

func helpMessage(isAdmin bool) string {
	var b strings.Builder
	b.WriteString("Welcome to the Portfolio Showcase Bot!\n\n")
	b.WriteString("Use /start to register for updates on the upcoming Portfolio Showcase Mini App.\n")
	if isAdmin {
		b.WriteString("\n--- Admin Commands ---\n")
		b.WriteString("/count - Get the total number of registered users.\n")
		b.WriteString("/list - Get a list of all registered usernames and IDs.\n")
		b.WriteString("/notify <message> - Send a broadcast message to all registered users. Example: `/notify The app is live!`\n")
	}
	return b.String()
}
