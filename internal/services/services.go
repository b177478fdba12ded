package services

import (
	"context"
	"log/slog"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/cache"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/events"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

// ===== TRAINING DTOs =====

// Training modes
const (
	ModeTraining = "training"
	ModeReview   = "review"
)

// QuizItem is a single question in a batch handed to the client
type QuizItem struct {
	ID     uint   `json:"id"`
	Word   string `json:"word"`
	Answer string `json:"answer"`
	Level  int    `json:"level"`
	Hint   string `json:"hint,omitempty"`
}

// QuizBatchResponse is the batch returned by batch selection
type QuizBatchResponse struct {
	Items []QuizItem `json:"items"`
	Level int        `json:"level,omitempty"`
	Mode  string     `json:"mode"`
}

// SubmissionResult is the client-reported outcome of one question
type SubmissionResult struct {
	WordID        uint   `json:"word_id" validate:"required"`
	Word          string `json:"word"`
	CorrectAnswer string `json:"correct_answer"`
	UserAnswer    string `json:"user_answer"`
	IsCorrect     bool   `json:"is_correct"`
	TimeSpentMs   int    `json:"time_spent_ms" validate:"min=0"`
}

// SubmitBatchRequest carries one finished training batch
type SubmitBatchRequest struct {
	StudentID        string             `json:"student_id" validate:"required"`
	Level            int                `json:"level" validate:"required,word_level"`
	Mode             string             `json:"mode" validate:"omitempty,training_mode"`
	Results          []SubmissionResult `json:"results" validate:"required,min=1,dive"`
	TotalTimeSpentMs int                `json:"total_time_spent_ms" validate:"min=0"`
}

// SubmissionSummary reports the processed batch back to the client
type SubmissionSummary struct {
	TotalQuestions int `json:"total_questions"`
	CorrectAnswers int `json:"correct_answers"`
	AccuracyRate   int `json:"accuracy_rate"` // whole percent
	StudyTime      int `json:"study_time"`    // minutes
}

// LevelProgress is per-level mastery for the statistics view
type LevelProgress struct {
	Level          int `json:"level"`
	TotalWords     int `json:"total_words"`
	AnsweredWords  int `json:"answered_words"`
	CorrectWords   int `json:"correct_words"`
	ProgressRate   int `json:"progress_rate"`   // answered / total, whole percent
	AccuracyRate   int `json:"accuracy_rate"`   // correct / answered, whole percent
	RemainingWords int `json:"remaining_words"` // total - answered
}

// StudentStatisticsResponse is the aggregated statistics view
type StudentStatisticsResponse struct {
	StudentID         string          `json:"student_id"`
	TotalStudyTime    int             `json:"total_study_time"`  // minutes
	WeeklyStudyTime   int             `json:"weekly_study_time"` // minutes
	AccuracyRate      int             `json:"accuracy_rate"`     // whole percent
	TotalWordsLearned int             `json:"total_words_learned"`
	TodayWordsLearned int             `json:"today_words_learned"`
	ConsecutiveDays   int             `json:"consecutive_days"`
	LevelProgress     []LevelProgress `json:"level_progress"`
}

// ===== WORD DTOs =====

type CreateWordRequest struct {
	Text    string  `json:"word" validate:"required,min=1,max=200"`
	Meaning *string `json:"meaning" validate:"omitempty,max=1000"`
	Level   int     `json:"level" validate:"required,word_level"`
}

type UpdateWordRequest struct {
	Text    *string `json:"word" validate:"omitempty,min=1,max=200"`
	Meaning *string `json:"meaning" validate:"omitempty,max=1000"`
	Level   *int    `json:"level" validate:"omitempty,word_level"`
}

type WordListResponse struct {
	Words []*models.Word `json:"words"`
	Total int64          `json:"total"`
}

// ===== STUDENT DTOs =====

type RegisterStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,max=255"`
	Name      string `json:"name" validate:"required,max=100"`
}

type StudentListResponse struct {
	Students []*models.Student `json:"students"`
	Total    int64             `json:"total"`
}

// ===== MESSAGE DTOs =====

type BroadcastMessageRequest struct {
	Title    string                 `json:"title" validate:"required,min=1,max=200"`
	Content  string                 `json:"content" validate:"required,max=2000"`
	Priority models.MessagePriority `json:"priority" validate:"omitempty,oneof=low normal high"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type MessageListResponse struct {
	Messages []*models.Message `json:"messages"`
	Total    int64             `json:"total"`
}

// ===== SERVICE INTERFACES =====

// TrainingService runs the core training loop: batch selection, submission
// processing, and statistics aggregation.
type TrainingService interface {
	SelectTrainingBatch(ctx context.Context, studentID string, level int) (*QuizBatchResponse, error)
	SelectReviewBatch(ctx context.Context, studentID string, level *int) (*QuizBatchResponse, error)
	SubmitBatch(ctx context.Context, req *SubmitBatchRequest) (*SubmissionSummary, error)
	GetStatistics(ctx context.Context, studentID string) (*StudentStatisticsResponse, error)
}

type WordService interface {
	CreateWord(ctx context.Context, req *CreateWordRequest) (*models.Word, error)
	GetWord(ctx context.Context, id uint) (*models.Word, error)
	UpdateWord(ctx context.Context, id uint, req *UpdateWordRequest) (*models.Word, error)
	DeleteWord(ctx context.Context, id uint) error
	ListWords(ctx context.Context, filters repositories.WordFilters) (*WordListResponse, error)
	LevelCounts(ctx context.Context) (map[int]int, error)
}

type StudentService interface {
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, studentID string) (*models.Student, error)
	ListStudents(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error)
	DeactivateStudent(ctx context.Context, studentID string) error
	RecordLogin(ctx context.Context, studentID string) error
}

type MessageService interface {
	BroadcastMessage(ctx context.Context, senderID string, req *BroadcastMessageRequest) (*models.Message, error)
	GetMessage(ctx context.Context, id uint) (*models.Message, error)
	ListMessages(ctx context.Context, filters repositories.MessageFilters) (*MessageListResponse, error)
	DeleteMessage(ctx context.Context, id uint) error
}

// ExportService renders word banks and statistics as downloadable files
type ExportService interface {
	ExportWords(ctx context.Context, format string) ([]byte, string, error)
	ExportStatistics(ctx context.Context, format string) ([]byte, string, error)
}

// ServiceManager bundles all services behind one handle for the handlers
type ServiceManager interface {
	Training() TrainingService
	Word() WordService
	Student() StudentService
	Message() MessageService
	Export() ExportService
}

type serviceManager struct {
	training TrainingService
	word     WordService
	student  StudentService
	message  MessageService
	export   ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) ServiceManager {
	return &serviceManager{
		training: NewTrainingService(repo, cacheService, publisher, logger, validator),
		word:     NewWordService(repo, cacheService, publisher, logger, validator),
		student:  NewStudentService(repo, publisher, logger, validator),
		message:  NewMessageService(repo, publisher, logger, validator),
		export:   NewExportService(repo, logger),
	}
}

func (m *serviceManager) Training() TrainingService { return m.training }
func (m *serviceManager) Word() WordService         { return m.word }
func (m *serviceManager) Student() StudentService   { return m.student }
func (m *serviceManager) Message() MessageService   { return m.message }
func (m *serviceManager) Export() ExportService     { return m.export }
