package reminder

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/existflow/taskmaster/internal/logger"
)

// Notifier delivers a rendered digest
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes digests to the log
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, text string) error {
	logger.Info("Reminder", logger.F("digest", text))
	return nil
}

// sender is the part of tgbotapi.BotAPI used here
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends digests to one Telegram chat
type TelegramNotifier struct {
	api    sender
	chatID int64
}

// NewTelegramNotifier authorizes the bot token and targets chatID
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger.Info("Telegram bot authorized", logger.F("account", api.Self.UserName))
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram reminder: %w", err)
	}
	return nil
}
