package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram delivers messages to Telegram channels. Delivery is
// fire-and-forget: callers log failures, nothing is retried synchronously.
type Telegram struct {
	bot *tgbotapi.BotAPI
}

func NewTelegram(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Telegram{bot: bot}, nil
}

// SendToChannel sends text to the given chat, optionally as HTML.
func (t *Telegram) SendToChannel(chatID int64, text string, html bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if html {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// SendStatus sends an operator status line.
func (t *Telegram) SendStatus(chatID int64, message string) error {
	msg := tgbotapi.NewMessage(chatID, "ℹ️ "+message)
	_, err := t.bot.Send(msg)
	return err
}
