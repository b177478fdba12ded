package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/services"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

// MockTrainingService is a mock implementation of services.TrainingService
type MockTrainingService struct {
	mock.Mock
}

func (m *MockTrainingService) SelectTrainingBatch(ctx context.Context, studentID string, level int) (*services.QuizBatchResponse, error) {
	args := m.Called(ctx, studentID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuizBatchResponse), args.Error(1)
}

func (m *MockTrainingService) SelectReviewBatch(ctx context.Context, studentID string, level *int) (*services.QuizBatchResponse, error) {
	args := m.Called(ctx, studentID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuizBatchResponse), args.Error(1)
}

func (m *MockTrainingService) SubmitBatch(ctx context.Context, req *services.SubmitBatchRequest) (*services.SubmissionSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmissionSummary), args.Error(1)
}

func (m *MockTrainingService) GetStatistics(ctx context.Context, studentID string) (*services.StudentStatisticsResponse, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.StudentStatisticsResponse), args.Error(1)
}

func setupTrainingRouter(svc services.TrainingService, studentID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := NewTrainingHandler(svc, utils.NewValidator(), logger)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if studentID != "" {
			c.Set("student_id", studentID)
		}
		c.Next()
	})
	router.GET("/training/words", handler.GetTrainingWords)
	router.GET("/training/review", handler.GetReviewWords)
	router.POST("/training/submit", handler.SubmitTrainingResult)
	router.GET("/training/statistics", handler.GetStudentStatistics)
	return router
}

func TestGetTrainingWords_ReturnsBatch(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	batch := &services.QuizBatchResponse{
		Items: []services.QuizItem{{ID: 1, Word: "hello", Level: 3}},
		Level: 3,
		Mode:  services.ModeTraining,
	}
	svc.On("SelectTrainingBatch", mock.Anything, "student-1", 3).Return(batch, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/training/words?level=3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got services.QuizBatchResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, services.ModeTraining, got.Mode)
	assert.Len(t, got.Items, 1)
}

func TestGetTrainingWords_MissingLevel(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/training/words", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SelectTrainingBatch")
}

func TestGetTrainingWords_NoWordsAtLevel(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	svc.On("SelectTrainingBatch", mock.Anything, "student-1", 9).
		Return(nil, services.ErrNoWordsAtLevel)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/training/words?level=9", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTrainingWords_Unauthenticated(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/training/words?level=3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetReviewWords_NoLevelFilter(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	batch := &services.QuizBatchResponse{
		Items: []services.QuizItem{{ID: 2, Word: "retry", Level: 1}},
		Mode:  services.ModeReview,
	}
	svc.On("SelectReviewBatch", mock.Anything, "student-1", (*int)(nil)).Return(batch, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/training/review", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetReviewWords_EmptyPool(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	svc.On("SelectReviewBatch", mock.Anything, "student-1", (*int)(nil)).
		Return(nil, services.ErrNoReviewWords)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/training/review", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitTrainingResult_OverridesStudentFromContext(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	summary := &services.SubmissionSummary{
		TotalQuestions: 2,
		CorrectAnswers: 1,
		AccuracyRate:   50,
		StudyTime:      1,
	}
	svc.On("SubmitBatch", mock.Anything, mock.MatchedBy(func(r *services.SubmitBatchRequest) bool {
		// The authenticated student always wins over the payload
		return r.StudentID == "student-1" && r.Level == 3 && len(r.Results) == 2
	})).Return(summary, nil)

	body, _ := json.Marshal(services.SubmitBatchRequest{
		StudentID: "spoofed-student",
		Level:     3,
		Mode:      services.ModeTraining,
		Results: []services.SubmissionResult{
			{WordID: 1, IsCorrect: true, TimeSpentMs: 3000},
			{WordID: 2, IsCorrect: false, TimeSpentMs: 4000},
		},
		TotalTimeSpentMs: 60000,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/training/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSubmitTrainingResult_MalformedPayload(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/training/submit", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SubmitBatch")
}

func TestSubmitTrainingResult_EmptyResults(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	svc.On("SubmitBatch", mock.Anything, mock.Anything).
		Return(nil, services.ErrEmptyResults)

	body, _ := json.Marshal(services.SubmitBatchRequest{Level: 3})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/training/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStudentStatistics_ReturnsView(t *testing.T) {
	svc := new(MockTrainingService)
	router := setupTrainingRouter(svc, "student-1")

	stats := &services.StudentStatisticsResponse{
		StudentID:       "student-1",
		TotalStudyTime:  30,
		AccuracyRate:    75,
		ConsecutiveDays: 3,
	}
	svc.On("GetStatistics", mock.Anything, "student-1").Return(stats, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/training/statistics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got services.StudentStatisticsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 75, got.AccuracyRate)
	assert.Equal(t, 3, got.ConsecutiveDays)
}
