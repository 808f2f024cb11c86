package notify

// Optional chart delivery to a Telegram chat. Nothing here runs unless a
// chat was requested explicitly.

import (
	"fmt"
	"strconv"

	logging "actions-graph/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ParseChatID accepts the numeric chat IDs Telegram uses, including the
// negative IDs of groups and channels.
func ParseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}
	return id, nil
}

// SendChart posts the rendered PNG as a photo.
func SendChart(botToken, chatID, photoPath, caption string) error {
	if botToken == "" {
		return fmt.Errorf("telegram bot token is not configured")
	}
	id, err := ParseChatID(chatID)
	if err != nil {
		return err
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	photo := tgbotapi.NewPhoto(id, tgbotapi.FilePath(photoPath))
	photo.Caption = caption
	if _, err := bot.Send(photo); err != nil {
		return fmt.Errorf("failed to send chart to telegram: %w", err)
	}

	logging.LogSuccess("chart sent to telegram",
		zap.String("path", photoPath),
		zap.Int64("chat_id", id))
	return nil
}
