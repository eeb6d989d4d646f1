package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetBusinessBookingsRequest запрос на получение бронирований бизнеса
type GetBusinessBookingsRequest struct {
	UserID          int64      `json:"userId"`
	BusinessID      int64      `json:"businessId"`
	RoomID          *int64     `json:"roomId,omitempty"`          // Фильтр по комнате (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и выехавшие
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{
		BusinessID:      r.BusinessID,
		RoomID:          r.RoomID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"userId"`
	BusinessID int64 `json:"businessId"`
	RoomID     int64 `json:"roomId"`

	CheckInDate  string `json:"checkInDate"`  // "2025-10-15"
	CheckOutDate string `json:"checkOutDate"` // "2025-10-18"
	Nights       int    `json:"nights"`
	Status       string `json:"status"`

	TotalPrice decimal.Decimal `json:"totalPrice"`

	// Денормализованные данные гостя
	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		BusinessID:         b.BusinessID,
		RoomID:             b.RoomID,
		CheckInDate:        b.CheckInDate.Format(domain.DateFormat),
		CheckOutDate:       b.CheckOutDate.Format(domain.DateFormat),
		Nights:             b.Nights,
		Status:             string(b.Status),
		TotalPrice:         b.TotalPrice,
		GuestName:          b.GuestName,
		GuestPhone:         b.GuestPhone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusReserved,
		domain.StatusCheckedIn,
		domain.StatusCheckedOut,
		domain.StatusCanceled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
