package models

// CreateOrderRequest - тело запроса на создание заказа
type CreateOrderRequest struct {
	UserID string `json:"user_id" binding:"required"`
	SeatID string `json:"seat_id" binding:"required"`
}

// OrderResponse - модель ответа с заказом
type OrderResponse struct {
	Order      *Order `json:"order"`
	Idempotent bool   `json:"idempotent,omitempty"`
}

// ListOrdersResponse - список заказов
type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
}

// ListEventsResponse - список событий
type ListEventsResponse struct {
	Events []Event `json:"events"`
}

// ListSeatsResponse - список мест
type ListSeatsResponse struct {
	Seats []Seat `json:"seats"`
}

// ListUsersResponse - список пользователей
type ListUsersResponse struct {
	Users []User `json:"users"`
}

// CreateUserRequest - модель для создания пользователя
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateUserResponse - модель ответа при создании пользователя
type CreateUserResponse struct {
	User *User `json:"user"`
}

// ErrorResponse - единый формат ошибок API
type ErrorResponse struct {
	Error string `json:"error"`
}
