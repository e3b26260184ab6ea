package command

import (
	"context"
	"fmt"
	"time"

	"voltraggio/internal/core/domain"
	"voltraggio/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Stats struct {
	store      port.SettingsStore
	textSender port.TextSender
	command    string
	now        func() time.Time
}

func NewStats(store port.SettingsStore, sender port.TextSender, command string) *Stats {
	return &Stats{
		store:      store,
		textSender: sender,
		command:    command,
		now:        time.Now,
	}
}

func (s *Stats) GetCommand() string {
	return s.command
}

const statsTemplate = "Il bot sta funzionando da *%d* giorni.\n" +
	"Sono state inviate *%d* gif, per una media di *%d* gif al giorno!"

func (s *Stats) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	start, err := s.store.StartDate()
	if err != nil {
		return fmt.Errorf("failed to read start date: %w", err)
	}

	stats := domain.ComputeStats(start, s.now(), s.store.SendCount())
	l.Debug().Int64("days", stats.DaysRunning).Int64("average", stats.Average).Msg("computed stats")

	err = s.textSender.SendMessage(ctx, message.ChatID,
		fmt.Sprintf(statsTemplate, stats.DaysRunning, stats.Sent, stats.Average))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
