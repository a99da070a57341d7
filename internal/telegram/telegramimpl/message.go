package telegramimpl

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var errDisabled = errors.New("telegram bot is disabled")

// SendMessage sends a plain text message to a chat
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	return tg.send(tgbotapi.NewMessage(chatID, text))
}

// SendMarkdown sends a MarkdownV2 formatted message to a chat
func (tg *TelegramImpl) SendMarkdown(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	return tg.send(msg)
}

func (tg *TelegramImpl) send(msg tgbotapi.MessageConfig) (int, error) {
	if !tg.Enabled() {
		return 0, errDisabled
	}
	sent, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message", "chatID", msg.ChatID, "error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	tg.Logger.Debug("Message sent", "chatID", msg.ChatID, "messageID", sent.MessageID)
	return sent.MessageID, nil
}

// GetUpdatesChan wraps the bot's GetUpdatesChan method
func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	if !tg.Enabled() {
		return make(chan tgbotapi.Update)
	}
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	if tg.Enabled() {
		tg.TgBot.StopReceivingUpdates()
	}
}
