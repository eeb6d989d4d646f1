package blocked

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/pkg/dbmetrics"
	"github.com/m04kA/TP-StayService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с заблокированными диапазонами дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заблокированный диапазон дат комнаты
func (r *Repository) Create(ctx context.Context, block *domain.BlockedDateRange) (*domain.BlockedDateRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_date_ranges").
		Columns("room_id", "business_id", "start_date", "end_date", "reason").
		Values(block.RoomID, block.BusinessID, block.StartDate, block.EndDate, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает заблокированный диапазон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlockedDateRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "room_id", "business_id", "start_date", "end_date", "reason", "created_at",
	).
		From("blocked_date_ranges").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var block domain.BlockedDateRange
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&block.RoomID,
		&block.BusinessID,
		&block.StartDate,
		&block.EndDate,
		&block.Reason,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	block.CreatedAt = createdAt.Time

	return &block, nil
}

// GetOverlappingForRooms получает блокировки комнат, пересекающиеся
// с интервалом [start, end) по полуоткрытой конвенции
func (r *Repository) GetOverlappingForRooms(ctx context.Context, roomIDs []int64, start, end time.Time) ([]*domain.BlockedDateRange, error) {
	if len(roomIDs) == 0 {
		return []*domain.BlockedDateRange{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "room_id", "business_id", "start_date", "end_date", "reason", "created_at",
	).
		From("blocked_date_ranges").
		Where(squirrel.Eq{"room_id": roomIDs}).
		Where(squirrel.Lt{"start_date": end}).
		Where(squirrel.Gt{"end_date": start}).
		OrderBy("room_id ASC, start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingForRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingForRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedDateRange, 0)
	for rows.Next() {
		var block domain.BlockedDateRange
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.RoomID,
			&block.BusinessID,
			&block.StartDate,
			&block.EndDate,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverlappingForRooms - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingForRooms - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// Delete удаляет заблокированный диапазон
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_date_ranges").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
