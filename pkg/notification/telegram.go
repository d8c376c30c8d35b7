package notification

import (
	"fmt"
	"time"

	"github.com/raykavin/tradeplot/pkg/logger"
	tb "gopkg.in/tucnak/telebot.v2"
)

// TelegramSettings holds configuration for Telegram delivery
type TelegramSettings struct {
	Token string  // Telegram bot token
	Users []int64 // Chat ids receiving the warnings
}

// sender is the part of the telebot client the notifier needs
type sender interface {
	Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error)
}

// Telegram forwards chart warnings to Telegram users
type Telegram struct {
	client sender
	users  []int64
	log    logger.Logger
}

// NewTelegram creates a Telegram notifier. The bot is only used to send messages,
// updates are never polled.
func NewTelegram(settings TelegramSettings, log logger.Logger) (*Telegram, error) {
	client, err := tb.NewBot(tb.Settings{
		Token:  settings.Token,
		Poller: &tb.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{client: client, users: settings.Users, log: log}, nil
}

// Warn implements Notifier
func (t *Telegram) Warn(message string) {
	for _, user := range t.users {
		if _, err := t.client.Send(&tb.User{ID: user}, "⚠️ "+message); err != nil {
			t.log.WithError(err).WithField("user", user).Error("notification/telegram: failed to send warning")
		}
	}
}
