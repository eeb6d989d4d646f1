package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
	createBooking "github.com/m04kA/TP-StayService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID   int64   `json:"roomId"`
	CheckIn  string  `json:"checkIn"`  // "2025-10-15"
	CheckOut string  `json:"checkOut"` // "2025-10-18"
	Notes    *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	BusinessID int64           `json:"businessId"`
	RoomID     int64           `json:"roomId"`
	CheckIn    string          `json:"checkIn"`
	CheckOut   string          `json:"checkOut"`
	Nights     int             `json:"nights"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	GuestName  *string         `json:"guestName,omitempty"`
	GuestPhone *string         `json:"guestPhone,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:   userID,
		RoomID:   r.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Notes:    r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		BusinessID: resp.BusinessID,
		RoomID:     resp.RoomID,
		CheckIn:    resp.CheckIn.Format(domain.DateFormat),
		CheckOut:   resp.CheckOut.Format(domain.DateFormat),
		Nights:     resp.Nights,
		Status:     resp.Status,
		TotalPrice: resp.TotalPrice,
		GuestName:  resp.GuestName,
		GuestPhone: resp.GuestPhone,
		Notes:      resp.Notes,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
