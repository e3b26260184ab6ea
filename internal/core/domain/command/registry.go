package command

import (
	"errors"
	"strings"

	"voltraggio/internal/core/port"

	"github.com/rs/zerolog/log"
)

var (
	ErrRegistryEmpty   = errors.New("can't fetch command, registry not initialized")
	ErrCommandNotFound = errors.New("command not found")
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		return nil, ErrRegistryEmpty
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, ErrCommandNotFound
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))

	for k := range r.commands {
		keys = append(keys, k)
	}

	return keys
}

// ParseCommand returns the lowercased command token. A trailing @botname, as
// Telegram appends it in group chats, is stripped when it names botUsername.
// Commands addressed to any other bot yield "".
func ParseCommand(text, botUsername string) string {
	token := strings.Fields(text)
	if len(token) == 0 {
		return ""
	}

	cmd, target, addressed := strings.Cut(token[0], "@")
	if addressed && !strings.EqualFold(target, strings.TrimPrefix(botUsername, "@")) {
		return ""
	}

	return strings.ToLower(cmd)
}
