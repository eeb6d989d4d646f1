package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
)

// Request модели

// CreateRoomRequest запрос на создание комнаты
type CreateRoomRequest struct {
	UserID     int64           `json:"userId"`
	BusinessID int64           `json:"businessId"`
	Number     string          `json:"number"`
	Name       string          `json:"name"`
	BasePrice  decimal.Decimal `json:"basePrice"`
}

// UpdateRoomRequest запрос на обновление комнаты
// Отсутствующие поля не меняются
type UpdateRoomRequest struct {
	UserID    int64            `json:"userId"`
	RoomID    int64            `json:"roomId"`
	Name      *string          `json:"name,omitempty"`
	BasePrice *decimal.Decimal `json:"basePrice,omitempty"`
}

// BlockDatesRequest запрос на блокировку дат комнаты
// Интервал полуоткрытый: [startDate, endDate)
type BlockDatesRequest struct {
	UserID    int64     `json:"userId"`
	RoomID    int64     `json:"roomId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    *string   `json:"reason,omitempty"`
}

// UnblockDatesRequest запрос на снятие блокировки
type UnblockDatesRequest struct {
	UserID  int64 `json:"userId"`
	BlockID int64 `json:"blockId"`
}

// Response модели

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID         int64           `json:"id"`
	BusinessID int64           `json:"businessId"`
	Number     string          `json:"number"`
	Name       string          `json:"name"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// BlockedRangeResponse ответ с данными заблокированного диапазона
type BlockedRangeResponse struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"roomId"`
	BusinessID int64     `json:"businessId"`
	StartDate  string    `json:"startDate"` // "2025-10-15"
	EndDate    string    `json:"endDate"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	return &RoomResponse{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		Number:     r.Number,
		Name:       r.Name,
		BasePrice:  r.BasePrice,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	if rooms == nil {
		return &RoomListResponse{Rooms: []RoomResponse{}}
	}

	resp := &RoomListResponse{
		Rooms: make([]RoomResponse, len(rooms)),
	}
	for i, room := range rooms {
		if roomResp := FromDomainRoom(room); roomResp != nil {
			resp.Rooms[i] = *roomResp
		}
	}
	return resp
}

// FromDomainBlockedRange конвертирует domain модель в DTO
func FromDomainBlockedRange(b *domain.BlockedDateRange) *BlockedRangeResponse {
	if b == nil {
		return nil
	}

	return &BlockedRangeResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		BusinessID: b.BusinessID,
		StartDate:  b.StartDate.Format(domain.DateFormat),
		EndDate:    b.EndDate.Format(domain.DateFormat),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
}
