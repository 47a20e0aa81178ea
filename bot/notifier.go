package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"face-attendance-seed/logging"
)

// Notifier implements services.BotNotifier
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// SendNotification sends message to the authorized chat. Failures are only logged.
func (n *Notifier) SendNotification(message string) {
	if n == nil || n.api == nil || n.chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, message)
	if _, err := n.api.Send(msg); err != nil {
		logging.GetLogger().Warn("failed to send telegram notification", "chat_id", n.chatID, "error", err)
	}
}

// Ensure Notifier implements the BotNotifier interface
var _ interface {
	SendNotification(message string)
} = (*Notifier)(nil)
