package lifecycle

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// ExitRestart is the exit status asking the supervisor for a relaunch.
const ExitRestart = 75

// Controller ends the serving loop by cancelling its context and remembers the
// exit status the process should report.
type Controller struct {
	cancel context.CancelFunc
	code   atomic.Int32
	once   sync.Once
}

func NewController(cancel context.CancelFunc) *Controller {
	return &Controller{cancel: cancel}
}

func (c *Controller) Restart() {
	c.finish(ExitRestart)
}

func (c *Controller) Stop() {
	c.finish(0)
}

// ExitCode is 0 unless Restart was the first call.
func (c *Controller) ExitCode() int {
	return int(c.code.Load())
}

func (c *Controller) finish(code int) {
	c.once.Do(func() {
		log.Info().Int("exitCode", code).Msg("shutting down")
		c.code.Store(int32(code))
		c.cancel()
	})
}
