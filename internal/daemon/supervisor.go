package daemon

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thejerf/suture/v4"
)

// newSupervisor returns the root of the daemon's service tree.
func newSupervisor(logger *slog.Logger) *suture.Supervisor {
	return suture.New("stickywin", suture.Spec{
		EventHook: eventHook(logger),
	})
}

func eventHook(logger *slog.Logger) suture.EventHook {
	return func(ei suture.Event) {
		switch e := ei.(type) {
		case suture.EventStopTimeout:
			logger.Info("service failed to terminate in time", "supervisor", e.SupervisorName, "service", e.ServiceName)
		case suture.EventServicePanic:
			logger.Error("service panicked", "supervisor", e.SupervisorName, "service", e.ServiceName, "panic", e.PanicMsg)
			logger.Debug(e.Stacktrace)
		case suture.EventServiceTerminate:
			logger.Warn("service failed", "supervisor", e.SupervisorName, "service", e.ServiceName, "error", e.Err)
		case suture.EventBackoff:
			logger.Debug("too many service failures, backing off", "supervisor", e.SupervisorName)
		case suture.EventResume:
			logger.Debug("leaving backoff", "supervisor", e.SupervisorName)
		default:
			logger.Warn("unknown supervisor event", "type", int(e.Type()))
		}
	}
}

// serviceFunc adapts a function to suture.Service.
type serviceFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (s serviceFunc) String() string { return s.name }

func (s serviceFunc) Serve(ctx context.Context) error {
	return sanitizeError(ctx, s.fn(ctx))
}

// sanitizeError keeps a failing service from being mistaken for a clean
// shutdown: suture stops restarting a service that returns a context
// error, so one is only passed through when ctx itself is done.
func sanitizeError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.New(err.Error())
	}
	return err
}
