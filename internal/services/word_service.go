package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/cache"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/events"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

type wordService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewWordService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) WordService {
	return &wordService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// CreateWord registers a word and seeds a placeholder answer record for every
// active student, in one transaction, so the new word immediately shows up in
// everyone's review pool.
func (s *wordService) CreateWord(ctx context.Context, req *CreateWordRequest) (*models.Word, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	word := &models.Word{
		Text:    req.Text,
		Meaning: req.Meaning,
		Level:   req.Level,
	}

	seededCount := 0
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Word().Create(ctx, word); err != nil {
			return fmt.Errorf("failed to create word: %w", err)
		}

		studentIDs, err := tx.Student().ListActiveIDs(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active students: %w", err)
		}
		if len(studentIDs) == 0 {
			return nil
		}

		if err := tx.Answer().SeedForStudents(ctx, word.ID, studentIDs); err != nil {
			return fmt.Errorf("failed to seed answer records: %w", err)
		}
		seededCount = len(studentIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := events.NewWordRegisteredEvent(word.ID, word.Text, word.Level, seededCount)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish word registered event",
			"word_id", word.ID, "error", err)
	}

	s.logger.Info("Registered word",
		"word_id", word.ID,
		"level", word.Level,
		"seeded_students", seededCount)

	return word, nil
}

func (s *wordService) GetWord(ctx context.Context, id uint) (*models.Word, error) {
	word, err := s.repo.Word().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to load word %d: %w", id, err)
	}
	return word, nil
}

func (s *wordService) UpdateWord(ctx context.Context, id uint, req *UpdateWordRequest) (*models.Word, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	word, err := s.GetWord(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		word.Text = *req.Text
	}
	if req.Meaning != nil {
		word.Meaning = req.Meaning
	}
	if req.Level != nil {
		word.Level = *req.Level
	}

	if err := s.repo.Word().Update(ctx, word); err != nil {
		return nil, fmt.Errorf("failed to update word %d: %w", id, err)
	}

	s.logger.Info("Updated word", "word_id", id)
	return word, nil
}

func (s *wordService) DeleteWord(ctx context.Context, id uint) error {
	if _, err := s.GetWord(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Word().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete word %d: %w", id, err)
	}
	s.logger.Info("Deleted word", "word_id", id)
	return nil
}

func (s *wordService) ListWords(ctx context.Context, filters repositories.WordFilters) (*WordListResponse, error) {
	words, total, err := s.repo.Word().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return &WordListResponse{Words: words, Total: total}, nil
}

func (s *wordService) LevelCounts(ctx context.Context) (map[int]int, error) {
	counts, err := s.repo.Word().CountByLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count words by level: %w", err)
	}
	return counts, nil
}
