package block_room_dates

import (
	"time"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
)

// BlockDatesRequest HTTP request model
// Интервал полуоткрытый: [startDate, endDate)
type BlockDatesRequest struct {
	StartDate string  `json:"startDate"` // "2025-10-15"
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *BlockDatesRequest) ToServiceRequest(roomID int64, userID int64) (*models.BlockDatesRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &models.BlockDatesRequest{
		UserID:    userID,
		RoomID:    roomID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    r.Reason,
	}, nil
}
