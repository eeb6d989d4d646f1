package unblock_room_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
	"github.com/m04kA/TP-StayService/internal/api/middleware"
	"github.com/m04kA/TP-StayService/internal/service/rooms"
	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
)

const (
	msgInvalidBlockID   = "некорректный ID блокировки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgBlockNotFound    = "блокировка не найдена"
	msgBusinessNotFound = "бизнес не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/rooms/{roomId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем blockId из URL
	vars := mux.Vars(r)
	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /rooms/{id}/blocks/{blockId} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /rooms/{id}/blocks/{blockId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Снимаем блокировку (сервис проверит права менеджера)
	err = h.service.UnblockDates(r.Context(), &models.UnblockDatesRequest{
		UserID:  userID,
		BlockID: blockID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrBlockNotFound):
			h.logger.Warn("DELETE /rooms/{id}/blocks/{blockId} - Block not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, rooms.ErrBusinessNotFound):
			h.logger.Warn("DELETE /rooms/{id}/blocks/{blockId} - Business not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("DELETE /rooms/{id}/blocks/{blockId} - Access denied: block_id=%d, user_id=%d",
				blockID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /rooms/{id}/blocks/{blockId} - Failed to unblock: block_id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /rooms/{id}/blocks/{blockId} - Block removed successfully: block_id=%d, user_id=%d",
		blockID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
