package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MessagePriority string

const (
	PriorityLow    MessagePriority = "low"
	PriorityNormal MessagePriority = "normal"
	PriorityHigh   MessagePriority = "high"
)

// Message is an administrator broadcast shown to students.
type Message struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	Title    string          `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Content  string          `json:"content" gorm:"type:text;not null" validate:"required,max=2000"`
	SenderID string          `json:"sender_id" gorm:"not null;size:255"`
	Priority MessagePriority `json:"priority" gorm:"default:normal;size:10" validate:"omitempty,oneof=low normal high"`
	Metadata datatypes.JSON  `json:"metadata,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Message) TableName() string {
	return "messages"
}
