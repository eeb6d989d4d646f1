package update_room

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
)

// UpdateRoomRequest HTTP request model
// Отсутствующие поля не меняются
type UpdateRoomRequest struct {
	Name      *string          `json:"name,omitempty"`
	BasePrice *decimal.Decimal `json:"basePrice,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateRoomRequest) ToServiceRequest(roomID int64, userID int64) *models.UpdateRoomRequest {
	return &models.UpdateRoomRequest{
		UserID:    userID,
		RoomID:    roomID,
		Name:      r.Name,
		BasePrice: r.BasePrice,
	}
}
