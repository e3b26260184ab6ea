package port

import (
	"context"

	"voltraggio/internal/core/domain"
)

type TextSender interface {
	// SendMessage sends a Markdown formatted message to a chat.
	SendMessage(ctx context.Context, chatID int64, text string) error
	// SendPlainMessage sends a message without any parse mode, for text that may contain markup characters.
	SendPlainMessage(ctx context.Context, chatID int64, text string) error
	// SendChatAction sends a specified chat action (e.g., typing, sending photo) to indicate activity in a given chat.
	SendChatAction(ctx context.Context, chatID int64, action domain.Action)
}

type MediaSender interface {
	// SendAnimationReply uploads an animation as a threaded reply to the provided message.
	SendAnimationReply(ctx context.Context, message *domain.Message, asset domain.Asset, caption string) error
	// SendPhoto uploads a photo with a caption to a chat.
	SendPhoto(ctx context.Context, chatID int64, asset domain.Asset, caption string) error
}
