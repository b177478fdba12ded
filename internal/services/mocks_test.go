package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/cache"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
)

// MockWordRepository is a mock implementation of WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) Create(ctx context.Context, word *models.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) GetByID(ctx context.Context, id uint) (*models.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Word), args.Error(1)
}

func (m *MockWordRepository) Update(ctx context.Context, word *models.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordRepository) List(ctx context.Context, filters repositories.WordFilters) ([]*models.Word, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Word), args.Get(1).(int64), args.Error(2)
}

func (m *MockWordRepository) GetByLevel(ctx context.Context, level int) ([]*models.Word, error) {
	args := m.Called(ctx, level)
	return args.Get(0).([]*models.Word), args.Error(1)
}

func (m *MockWordRepository) ListIDs(ctx context.Context) ([]uint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockWordRepository) CountByLevel(ctx context.Context) (map[int]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[int]int), args.Error(1)
}

// MockAnswerRepository is a mock implementation of AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Upsert(ctx context.Context, record *models.AnswerRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAnswerRepository) GetByStudentAndWord(ctx context.Context, studentID string, wordID uint) (*models.AnswerRecord, error) {
	args := m.Called(ctx, studentID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnswerRecord), args.Error(1)
}

func (m *MockAnswerRepository) SeedForStudents(ctx context.Context, wordID uint, studentIDs []string) error {
	args := m.Called(ctx, wordID, studentIDs)
	return args.Error(0)
}

func (m *MockAnswerRepository) SeedForWords(ctx context.Context, studentID string, wordIDs []uint) error {
	args := m.Called(ctx, studentID, wordIDs)
	return args.Error(0)
}

func (m *MockAnswerRepository) GetReviewWords(ctx context.Context, studentID string, level *int) ([]*models.Word, error) {
	args := m.Called(ctx, studentID, level)
	return args.Get(0).([]*models.Word), args.Error(1)
}

func (m *MockAnswerRepository) GetStudentAnswerStats(ctx context.Context, studentID string) (*repositories.StudentAnswerStats, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.StudentAnswerStats), args.Error(1)
}

func (m *MockAnswerRepository) GetLevelProgress(ctx context.Context, studentID string) ([]repositories.LevelProgressCounts, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]repositories.LevelProgressCounts), args.Error(1)
}

// MockStatisticsRepository is a mock implementation of StatisticsRepository
type MockStatisticsRepository struct {
	mock.Mock
}

func (m *MockStatisticsRepository) GetByStudent(ctx context.Context, studentID string) (*models.StatisticsRecord, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatisticsRecord), args.Error(1)
}

func (m *MockStatisticsRepository) GetByStudentForUpdate(ctx context.Context, studentID string) (*models.StatisticsRecord, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatisticsRecord), args.Error(1)
}

func (m *MockStatisticsRepository) Create(ctx context.Context, record *models.StatisticsRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStatisticsRepository) Update(ctx context.Context, record *models.StatisticsRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStatisticsRepository) ListAll(ctx context.Context) ([]*models.StatisticsRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.StatisticsRecord), args.Error(1)
}

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Student), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudentRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	args := m.Called(ctx, studentID)
	return args.Bool(0), args.Error(1)
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) List(ctx context.Context, filters repositories.MessageFilters) ([]*models.Message, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRepository aggregates the sub-repository mocks. WithTransaction runs
// the callback against the same mock set, so expectations set on the
// sub-mocks cover transactional calls too.
type MockRepository struct {
	word       *MockWordRepository
	answer     *MockAnswerRepository
	statistics *MockStatisticsRepository
	student    *MockStudentRepository
	message    *MockMessageRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		word:       new(MockWordRepository),
		answer:     new(MockAnswerRepository),
		statistics: new(MockStatisticsRepository),
		student:    new(MockStudentRepository),
		message:    new(MockMessageRepository),
	}
}

func (m *MockRepository) Word() repositories.WordRepository             { return m.word }
func (m *MockRepository) Answer() repositories.AnswerRepository         { return m.answer }
func (m *MockRepository) Statistics() repositories.StatisticsRepository { return m.statistics }
func (m *MockRepository) Student() repositories.StudentRepository       { return m.student }
func (m *MockRepository) Message() repositories.MessageRepository       { return m.message }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

// MockCacheService is a mock implementation of cache.CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

var _ cache.CacheService = (*MockCacheService)(nil)
