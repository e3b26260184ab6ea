package command

import (
	"context"
	"fmt"
	"time"

	"voltraggio/internal/core/domain"
	"voltraggio/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Static replies with a fixed message, used by /start and /ping.
type Static struct {
	textSender port.TextSender
	text       string
	command    string
}

const (
	StartMessage = "_Sono pronto a correggere chiunque dica boiate_"
	PingMessage  = "🏓 *PONG* 🏓"
)

func NewStatic(sender port.TextSender, command, text string) *Static {
	return &Static{textSender: sender, command: command, text: text}
}

func (s *Static) GetCommand() string {
	return s.command
}

func (s *Static) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Debug().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.textSender.SendMessage(ctx, message.ChatID, s.text); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
