package update_room_pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/service/pricing/models"
)

// UpdatePricingRequest HTTP request model
// Отсутствующее поле означает "оставить как в текущей конфигурации",
// isActive=false деактивирует конфигурацию целиком.
type UpdatePricingRequest struct {
	BasePrice *decimal.Decimal `json:"basePrice,omitempty"`

	WeekendPrice *decimal.Decimal `json:"weekendPrice,omitempty"`
	WeekendDays  *[]string        `json:"weekendDays,omitempty"`

	PeakPrice  *decimal.Decimal `json:"peakPrice,omitempty"`
	PeakMonths *[]int           `json:"peakMonths,omitempty"`

	HighPrice  *decimal.Decimal `json:"highPrice,omitempty"`
	HighMonths *[]int           `json:"highMonths,omitempty"`

	LowPrice  *decimal.Decimal `json:"lowPrice,omitempty"`
	LowMonths *[]int           `json:"lowMonths,omitempty"`

	IsActive *bool `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdatePricingRequest) ToServiceRequest(roomID int64, userID int64) *models.UpsertRuleSetRequest {
	return &models.UpsertRuleSetRequest{
		UserID:       userID,
		RoomID:       roomID,
		BasePrice:    r.BasePrice,
		WeekendPrice: r.WeekendPrice,
		WeekendDays:  r.WeekendDays,
		PeakPrice:    r.PeakPrice,
		PeakMonths:   r.PeakMonths,
		HighPrice:    r.HighPrice,
		HighMonths:   r.HighMonths,
		LowPrice:     r.LowPrice,
		LowMonths:    r.LowMonths,
		IsActive:     r.IsActive,
	}
}
