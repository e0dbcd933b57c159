package dbmetrics

import "context"

type contextKey struct{}

var executorKey = contextKey{}

// WithExecutor кладет активный транзакционный исполнитель в контекст.
// Репозитории достают его через GetExecutor и выполняют запросы в рамках транзакции.
func WithExecutor(ctx context.Context, executor TxExecutor) context.Context {
	return context.WithValue(ctx, executorKey, executor)
}

// GetExecutor возвращает исполнитель из контекста, если транзакция активна,
// иначе переданный fallback (обычно сам *DB или *sql.DB)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(executorKey).(TxExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction сообщает, есть ли в контексте активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(TxExecutor)
	return ok
}
