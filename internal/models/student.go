package models

import (
	"time"

	"gorm.io/gorm"
)

// Student is the account record for a learner. The external StudentID string
// (issued by the identity provider) is the key used by answer records and
// statistics; the numeric ID is internal to the database only.
type Student struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID string `json:"student_id" gorm:"uniqueIndex;not null;size:255" validate:"required,max=255"`
	Name      string `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Student) TableName() string {
	return "students"
}
