package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetGuestProfile получает профиль гостя по идентификатору пользователя
func (c *Client) GetGuestProfile(ctx context.Context, userID int64) (*Guest, error) {
	url := fmt.Sprintf("%s/internal/users/%d/profile", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrGuestNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var guest Guest
	if err := json.NewDecoder(resp.Body).Decode(&guest); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &guest, nil
}

// GetGuestProfileWithGracefulDegradation получает профиль гостя с graceful degradation
// При недоступности UserService возвращает ErrServiceDegraded: бронирование
// создается без денормализованных контактов гостя
func (c *Client) GetGuestProfileWithGracefulDegradation(ctx context.Context, userID int64) (*Guest, error) {
	c.log.Info("Fetching guest profile for user_id=%d", userID)

	guest, err := c.GetGuestProfile(ctx, userID)
	if err != nil {
		// Отсутствие профиля — бизнес-ситуация, пробрасываем дальше
		if err == ErrGuestNotFound {
			c.log.Info("No guest profile found for user_id=%d", userID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Successfully fetched guest profile for user_id=%d", userID)
	return guest, nil
}
