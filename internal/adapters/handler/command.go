package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"voltraggio/internal/core/domain"
	"voltraggio/internal/core/domain/command"
	"voltraggio/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// ErrorReporter receives every error a handler could not deal with itself.
type ErrorReporter interface {
	ReportError(ctx context.Context, err error, update string)
}

type Command struct {
	commandRegistry port.CommandRegistry
	reporter        ErrorReporter
	timeout         time.Duration
	botUsername     string
}

// NewCommand routes commands either without a @botname suffix or addressed to
// botUsername.
func NewCommand(commandRegistry port.CommandRegistry,
	reporter ErrorReporter,
	timeout time.Duration,
	botUsername string) *Command {
	return &Command{
		commandRegistry: commandRegistry,
		reporter:        reporter,
		timeout:         timeout,
		botUsername:     botUsername,
	}
}

// IsBotCommand reports whether the message opens with a bot_command entity.
func IsBotCommand(update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	for _, entity := range update.Message.Entities {
		if entity.Type == models.MessageEntityTypeBotCommand && entity.Offset == 0 {
			return true
		}
	}

	return false
}

func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if err := c.handle(ctx, update); err != nil {
		c.reporter.ReportError(ctx, err, RawUpdate(update))
	}
}

func (c *Command) handle(ctx context.Context, update *models.Update) error {
	if update.Message == nil {
		return nil
	}

	log.Debug().Str("message", update.Message.Text).Msg("received command")

	cmd := command.ParseCommand(update.Message.Text, c.botUsername)
	if cmd == "" {
		log.Debug().Str("message", update.Message.Text).Msg("command not addressed to this bot")
		return nil
	}

	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		return nil
	}

	err = commandHandler.Respond(ctx, c.timeout, toMessage(update.Message))
	if err != nil {
		log.Err(err).Str("command", cmd).Msg("failed to respond to command")
		return fmt.Errorf("command %s: %w", cmd, err)
	}

	return nil
}

// Recover turns a panicking handler into a reported error so polling continues.
func Recover(reporter ErrorReporter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					reporter.ReportError(ctx, fmt.Errorf("handler panic: %w", err), RawUpdate(update))
				}
			}()

			next(ctx, b, update)
		}
	}
}

// RawUpdate renders the update for error reports.
func RawUpdate(update *models.Update) string {
	if update == nil {
		return "null"
	}

	raw, err := json.Marshal(update)
	if err != nil {
		return fmt.Sprintf("%+v", *update)
	}

	return string(raw)
}

var errNoSender = errors.New("message without sender")

func toMessage(m *models.Message) *domain.Message {
	username, err := getUserNameOrFirstName(m.From)
	if err != nil {
		username = m.Chat.Title
	}

	return &domain.Message{
		ID:       m.ID,
		ChatID:   m.Chat.ID,
		Username: username,
		Text:     m.Text,
	}
}

func getUserNameOrFirstName(user *models.User) (string, error) {
	if user == nil {
		return "", errNoSender
	}

	if user.Username == "" {
		return user.FirstName, nil
	}

	return "@" + user.Username, nil
}
