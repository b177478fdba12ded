package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/cache"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/events"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

func newWordServiceForTest(repo *MockRepository) (WordService, *events.MockEventPublisher) {
	logger := newTestLogger()
	publisher := events.NewMockEventPublisher(logger)
	svc := NewWordService(repo, cache.NewNoopCache(), publisher, logger, utils.NewValidator())
	return svc, publisher
}

func TestCreateWord_SeedsAnswerRecordsForActiveStudents(t *testing.T) {
	repo := NewMockRepository()
	svc, publisher := newWordServiceForTest(repo)

	activeIDs := []string{"student-1", "student-2", "student-3"}

	repo.word.On("Create", mock.Anything, mock.MatchedBy(func(w *models.Word) bool {
		return w.Text == "resilient" && w.Level == 6
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Word).ID = 42
	}).Return(nil)
	repo.student.On("ListActiveIDs", mock.Anything).Return(activeIDs, nil)
	repo.answer.On("SeedForStudents", mock.Anything, uint(42), activeIDs).Return(nil)

	word, err := svc.CreateWord(context.Background(), &CreateWordRequest{
		Text:  "resilient",
		Level: 6,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(42), word.ID)
	repo.answer.AssertExpectations(t)

	published := publisher.PublishedEvents()
	assert.Len(t, published, 1)
	assert.Equal(t, events.EventWordRegistered, published[0].Type)
}

func TestCreateWord_NoActiveStudents(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newWordServiceForTest(repo)

	repo.word.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.student.On("ListActiveIDs", mock.Anything).Return([]string{}, nil)

	_, err := svc.CreateWord(context.Background(), &CreateWordRequest{
		Text:  "sparse",
		Level: 2,
	})

	assert.NoError(t, err)
	repo.answer.AssertNotCalled(t, "SeedForStudents")
}

func TestCreateWord_RejectsInvalidLevel(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newWordServiceForTest(repo)

	_, err := svc.CreateWord(context.Background(), &CreateWordRequest{
		Text:  "bogus",
		Level: 11,
	})

	assert.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	repo.word.AssertNotCalled(t, "Create")
}

func TestGetWord_NotFound(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newWordServiceForTest(repo)

	repo.word.On("GetByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetWord(context.Background(), 7)

	assert.ErrorIs(t, err, ErrWordNotFound)
	assert.True(t, IsNotFound(err))
}

func TestUpdateWord_AppliesPartialChanges(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newWordServiceForTest(repo)

	existing := &models.Word{ID: 7, Text: "old", Level: 3}
	repo.word.On("GetByID", mock.Anything, uint(7)).Return(existing, nil)
	repo.word.On("Update", mock.Anything, mock.MatchedBy(func(w *models.Word) bool {
		return w.Text == "old" && w.Level == 8
	})).Return(nil)

	newLevel := 8
	word, err := svc.UpdateWord(context.Background(), 7, &UpdateWordRequest{Level: &newLevel})

	assert.NoError(t, err)
	assert.Equal(t, 8, word.Level)
	assert.Equal(t, "old", word.Text)
}
