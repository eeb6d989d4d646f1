package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/TP-StayService/pkg/metrics"
)

// DBExecutor минимальный интерфейс исполнителя запросов
// Ему удовлетворяют *sql.DB, *sql.Tx, *DB и *Tx
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// DB обёртка над *sql.DB, собирающая метрики по каждому запросу
type DB struct {
	db          *sql.DB
	metrics     *metrics.Metrics
	serviceName string
}

// Wrap оборачивает *sql.DB сборщиком метрик
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string) *DB {
	return &DB{db: db, metrics: m, serviceName: serviceName}
}

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор статистики
// connection pool. Горутина останавливается закрытием stopCh.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, serviceName)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

// QueryContext выполняет запрос с учётом метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с учётом метрик
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, nil)
	return row
}

// ExecContext выполняет запрос без результата с учётом метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return result, err
}

// BeginTx начинает транзакцию; возвращаемый исполнитель тоже собирает метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observe("begin_tx", start, err)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, parent: d}, nil
}

func (d *DB) observe(operation string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	d.metrics.ObserveDBQuery(operation, status, time.Since(start).Seconds())
}

// collectPoolStats периодически публикует статистику connection pool
func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnectionsOpen.WithLabelValues(d.serviceName).Set(float64(stats.OpenConnections))
			d.metrics.DBConnectionsIdle.WithLabelValues(d.serviceName).Set(float64(stats.Idle))
			d.metrics.DBConnectionsInUse.WithLabelValues(d.serviceName).Set(float64(stats.InUse))
		}
	}
}

// Tx транзакция, выполняющая запросы через сборщик метрик родительской обёртки
type Tx struct {
	tx     *sql.Tx
	parent *DB
}

// QueryContext выполняет запрос внутри транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe("tx_query", start, err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки внутри транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe("tx_query_row", start, nil)
	return row
}

// ExecContext выполняет запрос без результата внутри транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe("tx_exec", start, err)
	return result, err
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
