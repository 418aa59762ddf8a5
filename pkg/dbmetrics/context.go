package dbmetrics

import "context"

type ctxKey struct{}

// WithExecutor returns a context carrying the given executor, typically an
// open transaction. Repositories pick it up through GetExecutor.
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, executor)
}

// GetExecutor returns the executor stored in the context, or fallback when
// no transaction is active.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(ctxKey{}).(DBExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction reports whether the context carries an active transaction.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(DBExecutor)
	return ok
}
