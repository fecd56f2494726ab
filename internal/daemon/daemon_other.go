//go:build !linux

package daemon

import (
	"context"
	"errors"
	"log/slog"
)

// Options configures Run.
type Options struct {
	ConfigPath string
	Logger     *slog.Logger
}

// Run is only supported on X11.
func Run(ctx context.Context, opts Options) error {
	return errors.New("the stickywin daemon requires Linux with an X11 display")
}
