package employee

import "time"

type Employee struct {
	ID           string    `gorm:"column:employee_id;primaryKey;size:50"`
	FullName     string    `gorm:"size:150;not null"`
	Designation  string    `gorm:"size:100"`
	MobileNumber string    `gorm:"size:20;uniqueIndex"`
	DateOfBirth  time.Time `gorm:"type:date;not null"`
	JoiningDate  time.Time `gorm:"type:date;not null"`

	// ManagerID is a self reference; nil for the top of the tree.
	ManagerID *string `gorm:"size:50;index"`

	Rating   *int   `gorm:"type:int"`
	IsActive bool   `gorm:"not null;default:true"`
	UserID   string `gorm:"size:50;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
