package handler

import (
	"context"
	"strings"
	"time"

	"voltraggio/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, message *domain.Message, trigger domain.Trigger) error
}

// Text answers plain text messages that contain a trigger word.
type Text struct {
	matcher    *domain.Matcher
	dispatcher Dispatcher
	reporter   ErrorReporter
	timeout    time.Duration
}

func NewText(matcher *domain.Matcher, dispatcher Dispatcher, reporter ErrorReporter, timeout time.Duration) *Text {
	return &Text{matcher: matcher, dispatcher: dispatcher, reporter: reporter, timeout: timeout}
}

func (h *Text) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := update.Message.Text
	if text == "" || IsBotCommand(update) {
		return
	}

	trigger, ok := h.matcher.Match(strings.ToLower(text))
	if !ok {
		return
	}

	log.Debug().
		Int("messageId", update.Message.ID).
		Int64("chatId", update.Message.Chat.ID).
		Str("trigger", trigger.Key).
		Msg("trigger matched")

	dispatchCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.dispatcher.Dispatch(dispatchCtx, toMessage(update.Message), trigger); err != nil {
		h.reporter.ReportError(ctx, err, RawUpdate(update))
	}
}
