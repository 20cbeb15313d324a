package user

import (
	"time"
)

// Status of a dashboard account. New registrations start as pending and are
// unlocked by an admin approval.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// User represents a dashboard account tied to one department
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string `gorm:"type:varchar(255);not null;unique" json:"email"`
	Username     string `gorm:"type:varchar(100);not null;unique" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Department   string `gorm:"type:varchar(100);not null" json:"department"`
	Status       Status `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
