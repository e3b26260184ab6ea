package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrTooManyRestarts = errors.New("too many restarts")

// Runner runs the bot once and returns its exit status.
type Runner func(ctx context.Context) (int, error)

type Supervisor struct {
	run          Runner
	restartDelay time.Duration
	maxRestarts  int
}

// NewSupervisor relaunches run while it exits with ExitRestart. A maxRestarts
// of zero means no limit.
func NewSupervisor(run Runner, restartDelay time.Duration, maxRestarts int) *Supervisor {
	return &Supervisor{run: run, restartDelay: restartDelay, maxRestarts: maxRestarts}
}

func (s *Supervisor) Run(ctx context.Context) (int, error) {
	restarts := 0

	for {
		code, err := s.run(ctx)
		if err != nil {
			return code, fmt.Errorf("failed to run bot: %w", err)
		}

		if code != ExitRestart {
			log.Info().Int("exitCode", code).Msg("bot exited")
			return code, nil
		}

		if s.maxRestarts > 0 && restarts >= s.maxRestarts {
			return code, fmt.Errorf("%w: %d", ErrTooManyRestarts, restarts)
		}
		restarts++

		log.Warn().Int("restarts", restarts).Dur("delay", s.restartDelay).Msg("relaunching bot")

		select {
		case <-ctx.Done():
			return code, ctx.Err()
		case <-time.After(s.restartDelay):
		}
	}
}

const shutdownGrace = 10 * time.Second

// ExecRunner starts path with args as a child process sharing our stdio. On
// cancellation the child gets an interrupt first, and is killed after a grace
// period.
func ExecRunner(path string, args []string) Runner {
	return func(ctx context.Context) (int, error) {
		cmd := exec.CommandContext(ctx, path, args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.Cancel = func() error {
			return cmd.Process.Signal(os.Interrupt)
		}
		cmd.WaitDelay = shutdownGrace

		log.Debug().Str("path", path).Strs("args", args).Msg("starting child")

		err := cmd.Run()

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		if err != nil {
			return -1, err
		}

		return 0, nil
	}
}
