package businessservice

// Business модель бизнеса из BusinessService
type Business struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	OwnerID    int64   `json:"owner_id"`
	ManagerIDs []int64 `json:"manager_ids"`
	City       string  `json:"city"`
	IsActive   bool    `json:"is_active"`
}

// IsManager проверяет, является ли пользователь владельцем или менеджером бизнеса
func (b *Business) IsManager(userID int64) bool {
	if b.OwnerID == userID {
		return true
	}
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от BusinessService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
