package get_available_rooms

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
	getAvailableRooms "github.com/m04kA/TP-StayService/internal/usecase/get_available_rooms"
)

// RoomOfferResponse HTTP модель свободной комнаты с ценой проживания
type RoomOfferResponse struct {
	RoomID     int64           `json:"roomId"`
	Number     string          `json:"number"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Nights     int             `json:"nights"`
}

// AvailableRoomsResponse HTTP response model
type AvailableRoomsResponse struct {
	BusinessID int64               `json:"businessId"`
	CheckIn    string              `json:"checkIn"`
	CheckOut   string              `json:"checkOut"`
	Nights     int                 `json:"nights"`
	Rooms      []RoomOfferResponse `json:"rooms"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableRooms.Response) *AvailableRoomsResponse {
	rooms := make([]RoomOfferResponse, len(resp.Rooms))
	for i, offer := range resp.Rooms {
		rooms[i] = RoomOfferResponse{
			RoomID:     offer.RoomID,
			Number:     offer.Number,
			Name:       offer.Name,
			TotalPrice: offer.TotalPrice,
			Nights:     offer.Nights,
		}
	}

	return &AvailableRoomsResponse{
		BusinessID: resp.BusinessID,
		CheckIn:    resp.CheckIn.Format(domain.DateFormat),
		CheckOut:   resp.CheckOut.Format(domain.DateFormat),
		Nights:     resp.Nights,
		Rooms:      rooms,
	}
}
