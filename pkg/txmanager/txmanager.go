package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/TP-StayService/pkg/dbmetrics"
)

// Количество попыток при serialization failure (SQLSTATE 40001)
const maxRetries = 3

// pgSerializationFailure код ошибки PostgreSQL при конфликте сериализации
const pgSerializationFailure = "40001"

// TransactionManager выполняет функции внутри сериализуемой транзакции
// поверх обёртки dbmetrics.DB
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем SERIALIZABLE.
// Транзакционный исполнитель передается через контекст (dbmetrics.WithExecutor);
// при конфликте сериализации транзакция повторяется до maxRetries раз.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("txmanager: transaction retries exhausted: %w", lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithExecutor(ctx, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}
