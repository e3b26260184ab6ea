package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voltraggio/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Notifier sends bot-level notices to every admin chat.
type Notifier struct {
	store  port.SettingsStore
	sender port.TextSender
	now    func() time.Time
}

func NewNotifier(store port.SettingsStore, sender port.TextSender) *Notifier {
	return &Notifier{
		store:  store,
		sender: sender,
		now:    time.Now,
	}
}

const (
	startedMessage = "*Il bot è stato avviato*"
	errorMessage   = "*ERRORE*"
	errorDetails   = "Error at time: %s\nError raised: %s\nUpdate: %s"
)

// Broadcast tries every admin even when some sends fail.
func (n *Notifier) Broadcast(ctx context.Context, text string) error {
	var errs []error

	for _, chatID := range n.store.Admins() {
		if err := n.sender.SendMessage(ctx, chatID, text); err != nil {
			log.Warn().Err(err).Int64("chatId", chatID).Msg("failed to notify admin")
			errs = append(errs, fmt.Errorf("notify %d: %w", chatID, err))
		}
	}

	return errors.Join(errs...)
}

func (n *Notifier) NotifyStarted(ctx context.Context) error {
	return n.Broadcast(ctx, startedMessage)
}

// ReportError logs err and forwards it to the admins together with the raw update that caused it.
func (n *Notifier) ReportError(ctx context.Context, err error, update string) {
	log.Error().Err(err).Str("update", update).Msg("update caused error")

	if bErr := n.Broadcast(ctx, errorMessage); bErr != nil {
		log.Warn().Err(bErr).Msg("failed to broadcast error notice")
	}

	details := fmt.Sprintf(errorDetails, n.now().Format(time.RFC3339), err, update)

	for _, chatID := range n.store.Admins() {
		if sErr := n.sender.SendPlainMessage(ctx, chatID, details); sErr != nil {
			log.Warn().Err(sErr).Int64("chatId", chatID).Msg("failed to send error details")
		}
	}
}
