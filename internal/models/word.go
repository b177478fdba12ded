package models

import (
	"time"

	"gorm.io/gorm"
)

// Word levels form a fixed 1..10 difficulty taxonomy.
const (
	MinWordLevel = 1
	MaxWordLevel = 10
)

type Word struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Text    string  `json:"word" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Meaning *string `json:"meaning" gorm:"type:text" validate:"omitempty,max=1000"`
	Level   int     `json:"level" gorm:"not null;index" validate:"required,min=1,max=10"`

	CreatedAt time.Time      `json:"added_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Word) TableName() string {
	return "words"
}
