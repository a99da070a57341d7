package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client interface {
	// Enabled is false when no bot token is configured.
	Enabled() bool

	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	// SendMarkdown sends text that is already escaped for MarkdownV2.
	SendMarkdown(chatID int64, text string) (int, error)
}
