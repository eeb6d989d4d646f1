package ruleset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/pkg/dbmetrics"
	"github.com/m04kA/TP-StayService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// DBExecutor интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

var rulesetColumns = []string{
	"id",
	"room_id",
	"business_id",
	"base_price",
	"weekend_price",
	"weekend_days",
	"peak_price",
	"peak_months",
	"high_price",
	"high_months",
	"low_price",
	"low_months",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сезонными конфигурациями цен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByRoom получает активную конфигурацию комнаты
// Частичный уникальный индекс гарантирует не более одной строки;
// отсутствие строки - ErrRuleSetNotFound
func (r *Repository) GetActiveByRoom(ctx context.Context, roomID int64) (*domain.SeasonalRuleSet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rulesetColumns...).
		From("seasonal_rulesets").
		Where(squirrel.Eq{"room_id": roomID, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRoom - build select query: %v", ErrBuildQuery, err)
	}

	rs, err := r.scanRuleSet(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRoom - scan rule set: %v", ErrScanRow, err)
	}

	return rs, nil
}

// GetActiveByRooms получает активные конфигурации набора комнат одним запросом
// Возвращает map room_id -> конфигурация; комнаты без активной конфигурации
// в map отсутствуют
func (r *Repository) GetActiveByRooms(ctx context.Context, roomIDs []int64) (map[int64]*domain.SeasonalRuleSet, error) {
	result := make(map[int64]*domain.SeasonalRuleSet, len(roomIDs))
	if len(roomIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rulesetColumns...).
		From("seasonal_rulesets").
		Where(squirrel.Eq{"room_id": roomIDs, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		rs, err := r.scanRuleSet(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByRooms - scan row: %v", ErrScanRow, err)
		}
		result[rs.RoomID] = rs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRooms - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert заменяет активную конфигурацию комнаты на переданную.
// Деактивация старой строки и вставка новой должны выполняться в одной
// транзакции (вызывающий передает транзакционный контекст); частичный
// уникальный индекс страхует инвариант "одна активная строка" на уровне БД
func (r *Repository) Upsert(ctx context.Context, rs *domain.SeasonalRuleSet) (*domain.SeasonalRuleSet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Деактивируем текущую активную конфигурацию, если она есть
	deactivateQuery, deactivateArgs, err := psqlbuilder.Update("seasonal_rulesets").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"room_id": rs.RoomID, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build deactivate query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deactivateQuery, deactivateArgs...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute deactivate: %v", ErrExecQuery, err)
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("seasonal_rulesets").
		Columns(
			"room_id",
			"business_id",
			"base_price",
			"weekend_price",
			"weekend_days",
			"peak_price",
			"peak_months",
			"high_price",
			"high_months",
			"low_price",
			"low_months",
			"is_active",
		).
		Values(
			rs.RoomID,
			rs.BusinessID,
			rs.BasePrice,
			rs.WeekendPrice,
			rs.WeekendDays,
			rs.PeakPrice,
			rs.PeakMonths,
			rs.HighPrice,
			rs.HighMonths,
			rs.LowPrice,
			rs.LowMonths,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&rs.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrActiveConflict
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rs.IsActive = true
	rs.CreatedAt = createdAt.Time
	rs.UpdatedAt = updatedAt.Time

	return rs, nil
}

// Deactivate деактивирует активную конфигурацию комнаты
// Комната возвращается к тарификации по базовой цене
func (r *Repository) Deactivate(ctx context.Context, roomID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("seasonal_rulesets").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"room_id": roomID, "is_active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleSetNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRuleSet сканирует одну строку в конфигурацию
func (r *Repository) scanRuleSet(row rowScanner) (*domain.SeasonalRuleSet, error) {
	var rs domain.SeasonalRuleSet
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rs.ID,
		&rs.RoomID,
		&rs.BusinessID,
		&rs.BasePrice,
		&rs.WeekendPrice,
		&rs.WeekendDays,
		&rs.PeakPrice,
		&rs.PeakMonths,
		&rs.HighPrice,
		&rs.HighMonths,
		&rs.LowPrice,
		&rs.LowMonths,
		&rs.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rs.CreatedAt = createdAt.Time
	rs.UpdatedAt = updatedAt.Time

	return &rs, nil
}
