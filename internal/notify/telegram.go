// Package notify delivers review reminders to learners.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/telugutor/backend/internal/logger"
)

// TelegramNotifier sends reminders through a Telegram bot.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
	log *logger.Logger
}

// NewTelegramNotifier connects to the Telegram bot API.
func NewTelegramNotifier(token string, log *logger.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot: bot,
		log: log.With("component", "telegram"),
	}, nil
}

// SendReminder tells a learner how many reviews are waiting.
func (n *TelegramNotifier) SendReminder(chatID int64, dueCount int) error {
	text := fmt.Sprintf("You have %d Telugu words ready for review. A few minutes now keeps the streak alive!", dueCount)
	if dueCount == 1 {
		text = "You have 1 Telugu word ready for review. A few minutes now keeps the streak alive!"
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram reminder: %w", err)
	}
	return nil
}

// NoopNotifier drops reminders. Used when no Telegram token is configured.
type NoopNotifier struct{}

// SendReminder does nothing.
func (NoopNotifier) SendReminder(int64, int) error { return nil }
