package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"time"

	"voltraggio/internal/core/domain"
	"voltraggio/internal/core/port"
	"voltraggio/internal/core/service"

	"github.com/rs/zerolog/log"
)

type Debug struct {
	auth       service.Authorizer
	store      port.SettingsStore
	textSender port.TextSender
	command    string
}

func NewDebug(auth service.Authorizer, store port.SettingsStore, sender port.TextSender, command string) *Debug {
	return &Debug{auth: auth, store: store, textSender: sender, command: command}
}

func (d *Debug) GetCommand() string {
	return d.command
}

const kb = 1024
const debugTemplate = `allocated mem: %d KB
goroutines: %d
heap: %d KB
stack: %d KB
gif sent: %d
compiled with %s for %s-%s
`
const metricCount = 3

func (d *Debug) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", d.GetCommand()).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !d.auth.Authorize(ctx, message.ChatID) {
		l.Debug().Msg("not authorized")
		return nil
	}

	l.Info().Msg("handling request")

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	err := d.textSender.SendPlainMessage(ctx, message.ChatID,
		fmt.Sprintf(
			debugTemplate,
			data[2].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			data[0].Value.Uint64()/kb,
			data[1].Value.Uint64()/kb,
			d.store.SendCount(),
			runtime.Version(), goos, goarch,
		))
	if err != nil {
		return fmt.Errorf("failed to send debug info: %w", err)
	}

	return nil
}
