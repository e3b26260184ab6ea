package service

import (
	"context"
	"fmt"

	"voltraggio/internal/core/domain"
	"voltraggio/internal/core/port"

	"github.com/rs/zerolog/log"
)

// AssetReader loads a reply asset from disk.
type AssetReader func(path string) (domain.Asset, error)

type Dispatcher struct {
	store     port.SettingsStore
	media     port.MediaSender
	text      port.TextSender
	readAsset AssetReader
}

func NewDispatcher(store port.SettingsStore,
	media port.MediaSender,
	text port.TextSender,
	readAsset AssetReader) *Dispatcher {
	return &Dispatcher{
		store:     store,
		media:     media,
		text:      text,
		readAsset: readAsset,
	}
}

const replyCaption = "*SI DICE %s*"

// Dispatch replies to message with the configured animation. The send counter
// only moves after the transport accepted the upload.
func (d *Dispatcher) Dispatch(ctx context.Context, message *domain.Message, trigger domain.Trigger) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("trigger", trigger.Key).
		Logger()

	d.text.SendChatAction(ctx, message.ChatID, domain.Typing)

	asset, err := d.readAsset(d.store.AnimationPath())
	if err != nil {
		return &domain.DispatchError{Trigger: trigger.Key, Err: err}
	}

	err = d.media.SendAnimationReply(ctx, message, asset, fmt.Sprintf(replyCaption, trigger.Reply))
	if err != nil {
		return &domain.DispatchError{
			Trigger: trigger.Key,
			Err:     fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err),
		}
	}

	sent, err := d.store.IncrementSendCount()
	if err != nil {
		return fmt.Errorf("failed to persist send count: %w", err)
	}

	l.Info().Int64("sent", sent).Msg("reply dispatched")

	return nil
}
