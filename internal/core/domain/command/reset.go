package command

import (
	"context"
	"fmt"
	"time"

	"voltraggio/internal/core/domain"
	"voltraggio/internal/core/port"
	"voltraggio/internal/core/service"

	"github.com/rs/zerolog/log"
)

type Reset struct {
	auth       service.Authorizer
	textSender port.TextSender
	lifecycle  port.Lifecycle
	command    string
}

func NewReset(auth service.Authorizer, sender port.TextSender, lifecycle port.Lifecycle, command string) *Reset {
	return &Reset{auth: auth, textSender: sender, lifecycle: lifecycle, command: command}
}

func (r *Reset) GetCommand() string {
	return r.command
}

const resetMessage = "_Riavvio in corso..._"

func (r *Reset) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", r.GetCommand()).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !r.auth.Authorize(ctx, message.ChatID) {
		l.Debug().Msg("not authorized")
		return nil
	}

	if err := r.textSender.SendMessage(ctx, message.ChatID, resetMessage); err != nil {
		return fmt.Errorf("failed to announce restart: %w", err)
	}

	l.Warn().Msg("resetting")
	r.lifecycle.Restart()

	return nil
}
