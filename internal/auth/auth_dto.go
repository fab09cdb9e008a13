package auth

import "time"

type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=4,max=100"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	Role       string `json:"role" binding:"required,oneof=employee manager hr"`
	EmployeeID string `json:"employee_id"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"user_id"`
	EmployeeID  string `json:"employee_id,omitempty"`
	Role        string `json:"role"`
}

type UserResponse struct {
	ID         string `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
	IsActive   bool   `json:"is_active"`
}

type LoginLogResponse struct {
	ID        string    `json:"login_log_id"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}
