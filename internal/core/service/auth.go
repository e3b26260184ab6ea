package service

import (
	"context"

	"voltraggio/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Authorizer interface {
	IsAdmin(chatID int64) bool
	Authorize(ctx context.Context, chatID int64) bool
}

type AdminAuthorizer struct {
	store  port.SettingsStore
	sender port.TextSender
}

func NewAdminAuthorizer(store port.SettingsStore, sender port.TextSender) *AdminAuthorizer {
	return &AdminAuthorizer{
		store:  store,
		sender: sender,
	}
}

const forbidden = "*Questo comando è solo per admins*"

func (a *AdminAuthorizer) IsAdmin(chatID int64) bool {
	return a.store.IsAdmin(chatID)
}

// Authorize reports whether chatID is an admin and tells the chat when it is not.
func (a *AdminAuthorizer) Authorize(ctx context.Context, chatID int64) bool {
	if a.IsAdmin(chatID) {
		return true
	}

	log.Warn().Int64("chatId", chatID).Msg("admin command from non-admin chat")

	err := a.sender.SendMessage(ctx, chatID, forbidden)
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}
