package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/pkg/dbmetrics"
	"github.com/m04kA/TP-StayService/pkg/psqlbuilder"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DBExecutor интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с комнатами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую комнату
func (r *Repository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("business_id", "number", "name", "base_price").
		Values(room.BusinessID, room.Number, room.Name, room.BasePrice).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return room, nil
}

// GetByID получает комнату по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "business_id", "number", "name", "base_price", "created_at", "updated_at",
	).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.Room
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.BusinessID,
		&room.Number,
		&room.Name,
		&room.BasePrice,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}

// ListByBusiness получает все комнаты бизнеса
// Порядок стабильный - по ID по возрастанию
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "business_id", "number", "name", "base_price", "created_at", "updated_at",
	).
		From("rooms").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&room.ID,
			&room.BusinessID,
			&room.Number,
			&room.Name,
			&room.BasePrice,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %v", ErrScanRow, err)
		}

		room.CreatedAt = createdAt.Time
		room.UpdatedAt = updatedAt.Time
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// Update обновляет изменяемые поля комнаты (имя и базовую цену)
// BusinessID неизменяем после создания
func (r *Repository) Update(ctx context.Context, id int64, name *string, basePrice *decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("rooms").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if name != nil {
		updateBuilder = updateBuilder.Set("name", *name)
	}
	if basePrice != nil {
		updateBuilder = updateBuilder.Set("base_price", *basePrice)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// Delete удаляет комнату
// Комната с бронированиями не удаляется - ErrRoomHasBookings; внешняя
// ссылка из bookings дополнительно страхует на уровне БД
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return ErrRoomHasBookings
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}
