package get_business_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	businessID int64,
	userID int64,
	roomIDStr string,
	statusStr string,
	startDateStr string,
	endDateStr string,
	includeInactiveStr string,
) (*models.GetBusinessBookingsRequest, error) {
	req := &models.GetBusinessBookingsRequest{
		UserID:          userID,
		BusinessID:      businessID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим roomId если указан
	if roomIDStr != "" {
		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.RoomID = &roomID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим период если указан - нужны обе границы
	if (startDateStr == "") != (endDateStr == "") {
		return nil, fmt.Errorf("startDate and endDate must be provided together")
	}
	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("endDate is before startDate")
		}
		req.StartDate = &startDate
		req.EndDate = &endDate
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
