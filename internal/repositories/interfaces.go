package repositories

import (
	"context"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type WordFilters struct {
	Level     *int   `json:"level"`
	Search    string `json:"search"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "text", "level"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type StudentFilters struct {
	ActiveOnly bool `json:"active_only"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
}

type MessageFilters struct {
	Priority *models.MessagePriority `json:"priority"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// StudentAnswerStats are whole-history counts over a student's answer
// records. TotalWordsLearned counts records answered at least once
// (answered_flag cleared).
type StudentAnswerStats struct {
	TotalWordsLearned int `json:"total_words_learned"`
	CorrectWords      int `json:"correct_words"`
	IncorrectWords    int `json:"incorrect_words"`
}

// LevelProgressCounts are raw per-level counts; percentage derivation (with
// divide-by-zero guards) is the service's job.
type LevelProgressCounts struct {
	Level         int `json:"level"`
	TotalWords    int `json:"total_words"`
	AnsweredWords int `json:"answered_words"`
	CorrectWords  int `json:"correct_words"`
}

// ===== REPOSITORY INTERFACES =====

type WordRepository interface {
	Create(ctx context.Context, word *models.Word) error
	GetByID(ctx context.Context, id uint) (*models.Word, error)
	Update(ctx context.Context, word *models.Word) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters WordFilters) ([]*models.Word, int64, error)
	GetByLevel(ctx context.Context, level int) ([]*models.Word, error)
	ListIDs(ctx context.Context) ([]uint, error)
	CountByLevel(ctx context.Context) (map[int]int, error)
}

type AnswerRepository interface {
	// Upsert atomically inserts or overwrites the record for the
	// (student_id, word_id) pair. Last write wins.
	Upsert(ctx context.Context, record *models.AnswerRecord) error
	GetByStudentAndWord(ctx context.Context, studentID string, wordID uint) (*models.AnswerRecord, error)

	// Placeholder seeding; existing pairs are left untouched.
	SeedForStudents(ctx context.Context, wordID uint, studentIDs []string) error
	SeedForWords(ctx context.Context, studentID string, wordIDs []uint) error

	// GetReviewWords returns words the student has not yet answered
	// correctly: no answer record, a seeded NULL record, or is_correct
	// false. Level nil means any level.
	GetReviewWords(ctx context.Context, studentID string, level *int) ([]*models.Word, error)

	GetStudentAnswerStats(ctx context.Context, studentID string) (*StudentAnswerStats, error)
	GetLevelProgress(ctx context.Context, studentID string) ([]LevelProgressCounts, error)
}

type StatisticsRepository interface {
	GetByStudent(ctx context.Context, studentID string) (*models.StatisticsRecord, error)
	// GetByStudentForUpdate takes a row lock; only meaningful inside a
	// transaction started via Repository.WithTransaction.
	GetByStudentForUpdate(ctx context.Context, studentID string) (*models.StatisticsRecord, error)
	Create(ctx context.Context, record *models.StatisticsRecord) error
	Update(ctx context.Context, record *models.StatisticsRecord) error
	ListAll(ctx context.Context) ([]*models.StatisticsRecord, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	List(ctx context.Context, filters MessageFilters) ([]*models.Message, int64, error)
	Delete(ctx context.Context, id uint) error
}

// Repository aggregates all repositories behind one handle so services can
// run multi-store operations through WithTransaction.
type Repository interface {
	Word() WordRepository
	Answer() AnswerRepository
	Statistics() StatisticsRepository
	Student() StudentRepository
	Message() MessageRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}
