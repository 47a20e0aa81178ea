// Package bot sends the seeding summary to a Telegram chat.
package bot

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"face-attendance-seed/logging"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Init connects to the Telegram Bot API and binds the target chat.
func Init(token string, authorizedChatIDStr string) (*Notifier, error) {
	return initWithEndpoint(token, authorizedChatIDStr, tgbotapi.APIEndpoint)
}

func initWithEndpoint(token, authorizedChatIDStr, endpoint string) (*Notifier, error) {
	chatID, err := strconv.ParseInt(authorizedChatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id %q: %w", authorizedChatIDStr, err)
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpClient)
	if err != nil {
		return nil, err
	}

	api.Debug = false
	logging.GetLogger().Info("telegram bot authorized", "account", api.Self.UserName)

	return &Notifier{api: api, chatID: chatID}, nil
}
