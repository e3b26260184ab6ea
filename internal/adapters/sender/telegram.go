package sender

import (
	"bytes"
	"context"
	"fmt"

	"voltraggio/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// TelegramBot is the subset of *bot.Bot used for outbound calls.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendAnimation(ctx context.Context, params *bot.SendAnimationParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

const TelegramMessageLimit = 4096

func (s *Telegram) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// SendPlainMessage splits text that exceeds the Telegram limit into several messages.
func (s *Telegram) SendPlainMessage(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range chunkText(text, TelegramMessageLimit) {
		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   chunk,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}
	}

	return nil
}

func (s *Telegram) SendAnimationReply(ctx context.Context, message *domain.Message,
	asset domain.Asset, caption string) error {
	params := &bot.SendAnimationParams{
		ChatID: message.ChatID,
		Animation: &models.InputFileUpload{
			Filename: asset.Name,
			Data:     bytes.NewReader(asset.Data),
		},
		Caption:   caption,
		ParseMode: models.ParseModeMarkdownV1,
		ReplyParameters: &models.ReplyParameters{
			MessageID: message.ID,
			ChatID:    message.ChatID,
		},
	}

	_, err := s.bot.SendAnimation(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to send animation response")
		return err
	}

	return nil
}

func (s *Telegram) SendPhoto(ctx context.Context, chatID int64, asset domain.Asset, caption string) error {
	params := &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: asset.Name,
			Data:     bytes.NewReader(asset.Data),
		},
		Caption:   caption,
		ParseMode: models.ParseModeMarkdownV1,
	}

	_, err := s.bot.SendPhoto(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to send photo response")
		return err
	}

	return nil
}

// SendChatAction is best effort, a failure is only logged.
func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	chatAction := models.ChatActionTyping
	if action != domain.Typing {
		log.Debug().Str("action", string(action)).Msg("unknown chat action, sending typing")
	}

	log.Trace().Int64("chatID", chatID).Msg("transmitting action")
	_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: chatAction,
	})
	if err != nil {
		log.Warn().Err(err).Int64("chatID", chatID).Msg("error sending chat action")
	}
}

func chunkText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/limit+1)
	for len(runes) > 0 {
		n := min(limit, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}

	return chunks
}
