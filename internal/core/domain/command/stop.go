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

type Stop struct {
	auth       service.Authorizer
	store      port.SettingsStore
	textSender port.TextSender
	lifecycle  port.Lifecycle
	command    string
}

func NewStop(auth service.Authorizer,
	store port.SettingsStore,
	sender port.TextSender,
	lifecycle port.Lifecycle,
	command string) *Stop {
	return &Stop{auth: auth, store: store, textSender: sender, lifecycle: lifecycle, command: command}
}

func (s *Stop) GetCommand() string {
	return s.command
}

const stopMessage = "_Il bot è stato fermato_"

// Respond flushes the settings before stopping so the counter survives the exit.
func (s *Stop) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !s.auth.Authorize(ctx, message.ChatID) {
		l.Debug().Msg("not authorized")
		return nil
	}

	if err := s.textSender.SendMessage(ctx, message.ChatID, stopMessage); err != nil {
		return fmt.Errorf("failed to announce stop: %w", err)
	}

	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to flush settings: %w", err)
	}

	l.Warn().Msg("bot stopped")
	s.lifecycle.Stop()

	return nil
}
