package userservice

// Guest профиль гостя из UserService
type Guest struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// FullName возвращает полное имя гостя
func (g *Guest) FullName() string {
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
