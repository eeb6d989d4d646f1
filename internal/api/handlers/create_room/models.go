package create_room

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
)

// CreateRoomRequest HTTP request model
type CreateRoomRequest struct {
	Number    string          `json:"number"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateRoomRequest) ToServiceRequest(businessID int64, userID int64) *models.CreateRoomRequest {
	return &models.CreateRoomRequest{
		UserID:     userID,
		BusinessID: businessID,
		Number:     r.Number,
		Name:       r.Name,
		BasePrice:  r.BasePrice,
	}
}
