package dbmetrics

import "context"

type ctxKey int

const txKey ctxKey = iota

// WithExecutor кладет транзакционный исполнитель в контекст
// Репозитории, получившие такой контекст, выполняют запросы внутри транзакции
func WithExecutor(ctx context.Context, tx DBExecutor) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor возвращает исполнитель из контекста, если там есть активная
// транзакция, иначе - переданный по умолчанию
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey).(DBExecutor); ok && tx != nil {
		return tx
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли контекст внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey).(DBExecutor)
	return ok && tx != nil
}
