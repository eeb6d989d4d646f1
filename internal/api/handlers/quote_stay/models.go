package quote_stay

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
	quoteStay "github.com/m04kA/TP-StayService/internal/usecase/quote_stay"
)

// NightPriceResponse HTTP модель цены одной ночи
type NightPriceResponse struct {
	Date    string          `json:"date"`
	Weekday string          `json:"weekday"`
	Price   decimal.Decimal `json:"price"`
	Tier    string          `json:"tier"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	RoomID    int64                `json:"roomId"`
	CheckIn   string               `json:"checkIn"`
	CheckOut  string               `json:"checkOut"`
	Nights    int                  `json:"nights"`
	Total     decimal.Decimal      `json:"total"`
	Breakdown []NightPriceResponse `json:"breakdown"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteStay.Response) *QuoteResponse {
	breakdown := make([]NightPriceResponse, len(resp.Breakdown))
	for i, night := range resp.Breakdown {
		breakdown[i] = NightPriceResponse{
			Date:    night.Date,
			Weekday: night.Weekday,
			Price:   night.Price,
			Tier:    night.Tier,
		}
	}

	return &QuoteResponse{
		RoomID:    resp.RoomID,
		CheckIn:   resp.CheckIn.Format(domain.DateFormat),
		CheckOut:  resp.CheckOut.Format(domain.DateFormat),
		Nights:    resp.Nights,
		Total:     resp.Total,
		Breakdown: breakdown,
	}
}
