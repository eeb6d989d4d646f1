package quote_stay

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
	"github.com/m04kA/TP-StayService/internal/domain"
	quoteStay "github.com/m04kA/TP-StayService/internal/usecase/quote_stay"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgInvalidDates  = "некорректные даты, ожидается checkIn и checkOut в формате YYYY-MM-DD"
	msgInvalidRange  = "некорректный интервал дат"
	msgRoomNotFound  = "комната не найдена"
)

type Handler struct {
	useCase QuoteStayUseCase
	logger  Logger
}

func NewHandler(useCase QuoteStayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/quote
// Query params: checkIn, checkOut (обязательные, формат YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/quote - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	checkIn, err := time.Parse(domain.DateFormat, r.URL.Query().Get("checkIn"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/quote - Invalid checkIn: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	checkOut, err := time.Parse(domain.DateFormat, r.URL.Query().Get("checkOut"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/quote - Invalid checkOut: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &quoteStay.Request{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, quoteStay.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/quote - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, quoteStay.ErrInvalidDateRange),
			errors.Is(err, quoteStay.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/quote - Invalid request: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /rooms/{id}/quote - Failed: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/quote - Quote computed: room_id=%d, nights=%d, total=%s",
		roomID, result.Nights, result.Total.String())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
