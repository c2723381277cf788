package bootstrap

import "context"

// Preparer leaves workingDirectory containing a runnable, up-to-date build
// with all declared dependencies installed, regardless of prior state
// (absent, partially built, or already current). Prepare must be idempotent.
// A non-nil error aborts the orchestration before launch.
type Preparer interface {
	Prepare(ctx context.Context, workingDirectory string) error
}

// PrepareFunc adapts a function to the Preparer interface.
type PrepareFunc func(ctx context.Context, workingDirectory string) error

func (f PrepareFunc) Prepare(ctx context.Context, workingDirectory string) error {
	return f(ctx, workingDirectory)
}
