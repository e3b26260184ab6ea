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

type Gauss struct {
	store       port.SettingsStore
	imageSender port.MediaSender
	textSender  port.TextSender
	readAsset   service.AssetReader
	command     string
}

func NewGauss(store port.SettingsStore,
	imageSender port.MediaSender,
	textSender port.TextSender,
	readAsset service.AssetReader,
	command string) *Gauss {
	return &Gauss{
		store:       store,
		imageSender: imageSender,
		textSender:  textSender,
		readAsset:   readAsset,
		command:     command,
	}
}

func (g *Gauss) GetCommand() string {
	return g.command
}

const gaussCaption = "*Johann Carl Friedrich Gauß*"

func (g *Gauss) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", g.GetCommand()).
		Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	asset, err := g.readAsset(g.store.ImagePath())
	if err != nil {
		return fmt.Errorf("error reading image: %w", err)
	}

	err = g.imageSender.SendPhoto(ctx, message.ChatID, asset, gaussCaption)
	if err != nil {
		return fmt.Errorf("error sending image: %w", err)
	}

	return nil
}
