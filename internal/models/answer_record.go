package models

import "time"

// AnswerRecord is the latest known outcome of a student attempting a word.
// A placeholder row (is_correct NULL, answered_flag true) is seeded for every
// active student when a word is registered; every submission afterwards
// upserts the same row in place. The (student_id, word_id) pair is unique.
type AnswerRecord struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID string `json:"student_id" gorm:"not null;size:255;uniqueIndex:idx_answer_student_word"`
	WordID    uint   `json:"word_id" gorm:"not null;uniqueIndex:idx_answer_student_word"`

	// IsCorrect is NULL until the student answers the word for the first time.
	IsCorrect  *bool      `json:"is_correct"`
	AnsweredAt *time.Time `json:"answered_at"`

	// AnsweredFlag marks a freshly seeded, never-answered row. Submissions
	// always drive it to false. No column default: gorm would substitute a
	// declared default for the zero value and overwrite a submitted false.
	AnsweredFlag bool `json:"answered_flag" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Word *Word `json:"-" gorm:"foreignKey:WordID"`
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}
