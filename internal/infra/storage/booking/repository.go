package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/pkg/dbmetrics"
	"github.com/m04kA/TP-StayService/pkg/psqlbuilder"
)

// pgExclusionViolation код PostgreSQL для нарушения EXCLUDE-ограничения
// bookings_no_overlap (пересечение дат занимающих бронирований)
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"room_id",
	"business_id",
	"user_id",
	"check_in_date",
	"check_out_date",
	"status",
	"total_price",
	"nights",
	"guest_name",
	"guest_phone",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями проживания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается только внутри сериализуемой транзакции usecase создания
// бронирования: проверка доступности и вставка обязаны быть одной атомарной
// единицей. EXCLUDE-ограничение БД дублирует проверку; его нарушение
// транслируется в ErrBookingConflict
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"business_id",
			"user_id",
			"check_in_date",
			"check_out_date",
			"status",
			"total_price",
			"nights",
			"guest_name",
			"guest_phone",
			"notes",
		).
		Values(
			booking.RoomID,
			booking.BusinessID,
			booking.UserID,
			booking.CheckInDate,
			booking.CheckOutDate,
			booking.Status,
			booking.TotalPrice,
			booking.Nights,
			booking.GuestName,
			booking.GuestPhone,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, ErrBookingConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("check_in_date DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByBusinessWithFilter получает бронирования бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по комнате, периоду, статусу и включению
// неактивных бронирований (отменённых и выехавших)
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}

	// Фильтрация по периоду: берём бронирования, пересекающиеся с периодом
	// по полуоткрытой конвенции
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"check_out_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"check_in_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		nonBlocking := make([]string, len(domain.NonBlockingStatuses))
		for i, s := range domain.NonBlockingStatuses {
			nonBlocking[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": nonBlocking})
	}

	selectBuilder = selectBuilder.OrderBy("check_in_date DESC, id DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetOverlappingForRooms получает занимающие бронирования комнат,
// пересекающиеся с интервалом [start, end) по полуоткрытой конвенции.
// Внутри транзакции добавляет FOR UPDATE - строки блокируются на время
// проверки доступности в usecase создания бронирования
func (r *Repository) GetOverlappingForRooms(ctx context.Context, roomIDs []int64, start, end time.Time) ([]*domain.Booking, error) {
	if len(roomIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	blocking := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		blocking[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"room_id": roomIDs}).
		Where(squirrel.Eq{"status": blocking}).
		Where(squirrel.Lt{"check_in_date": end}).
		Where(squirrel.Gt{"check_out_date": start}).
		OrderBy("room_id ASC, check_in_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingForRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingForRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCanceled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ExistsForRoom проверяет, ссылается ли хоть одно бронирование на комнату
// Используется защитой удаления комнаты
func (r *Repository) ExistsForRoom(ctx context.Context, roomID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForRoom - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForRoom - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.BusinessID,
		&booking.UserID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.Status,
		&booking.TotalPrice,
		&booking.Nights,
		&booking.GuestName,
		&booking.GuestPhone,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
