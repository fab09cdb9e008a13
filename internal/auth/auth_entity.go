package auth

import "time"

// Role names carried in the JWT and checked by the policy.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
)

type User struct {
	ID           string `gorm:"column:user_id;primaryKey;size:50"`
	Username     string `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         string `gorm:"size:20;not null"`
	EmployeeID   string `gorm:"size:50;index"`
	IsActive     bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoginLog records every authentication attempt, successful or not.
type LoginLog struct {
	ID        string    `gorm:"column:login_log_id;primaryKey;size:50"`
	Username  string    `gorm:"size:100;not null;index"`
	UserID    string    `gorm:"size:50"`
	Success   bool      `gorm:"not null"`
	IPAddress string    `gorm:"size:45"`
	UserAgent string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index"`
}
