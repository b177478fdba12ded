package models

import "time"

// StatisticsRecord keeps per-student rolling study metrics. One row per
// student, created lazily on the first submission and updated on every
// subsequent one. Owned exclusively by the training service.
type StatisticsRecord struct {
	StudentID         string    `json:"student_id" gorm:"primaryKey;size:255"`
	TotalStudyTime    int       `json:"total_study_time" gorm:"not null;default:0"`  // minutes
	WeeklyStudyTime   int       `json:"weekly_study_time" gorm:"not null;default:0"` // minutes
	AccuracyRate      float64   `json:"accuracy_rate" gorm:"not null;default:0"`     // 0..1
	TodayWordsLearned int       `json:"today_words_learned" gorm:"not null;default:0"`
	ConsecutiveDays   int       `json:"consecutive_days" gorm:"not null;default:0"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (StatisticsRecord) TableName() string {
	return "statistics_records"
}
