package daemon

import (
	"context"
	"errors"
	"testing"
)

func TestSanitizeError(t *testing.T) {
	live := context.Background()
	done, cancel := context.WithCancel(context.Background())
	cancel()

	boom := errors.New("boom")
	tests := []struct {
		name      string
		ctx       context.Context
		err       error
		wantNil   bool
		wantCtx   bool
		wantCause error
	}{
		{name: "nil", ctx: live, err: nil, wantNil: true},
		{name: "plain failure", ctx: live, err: boom, wantCause: boom},
		{name: "stray cancel while running", ctx: live, err: context.Canceled},
		{name: "shutdown", ctx: done, err: boom, wantCtx: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeError(tt.ctx, tt.err)
			switch {
			case tt.wantNil:
				if got != nil {
					t.Fatalf("got %v, want nil", got)
				}
			case tt.wantCtx:
				if !errors.Is(got, context.Canceled) {
					t.Fatalf("got %v, want context.Canceled", got)
				}
			case tt.wantCause != nil:
				if !errors.Is(got, tt.wantCause) {
					t.Fatalf("got %v, want %v", got, tt.wantCause)
				}
			default:
				if got == nil || errors.Is(got, context.Canceled) {
					t.Fatalf("got %v, want a non-context error", got)
				}
			}
		})
	}
}

func TestServiceFunc(t *testing.T) {
	s := serviceFunc{name: "worker", fn: func(ctx context.Context) error { return context.DeadlineExceeded }}
	if s.String() != "worker" {
		t.Fatalf("String() = %q", s.String())
	}
	if err := s.Serve(context.Background()); err == nil || errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Serve() = %v, want sanitized error", err)
	}
}
