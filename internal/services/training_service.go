package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/cache"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/events"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

const (
	// batchLimit caps the number of questions handed out per batch
	batchLimit = 20

	// accuracySmoothing is the weight of the newest batch in the rolling
	// accuracy: new = (1-w)*old + w*batch
	accuracySmoothing = 0.2

	statisticsCacheTTL = time.Minute
)

type trainingService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewTrainingService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) TrainingService {
	return &trainingService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// statisticsCacheKey is scoped to the calendar day: a view cached just
// before midnight must not serve yesterday's daily counters after the
// boundary. Stale keys age out via the TTL.
func statisticsCacheKey(studentID string) string {
	return fmt.Sprintf("stats:student:%s:%s", studentID, time.Now().Format("2006-01-02"))
}

// SelectTrainingBatch picks up to 20 shuffled words at the requested level
func (s *trainingService) SelectTrainingBatch(ctx context.Context, studentID string, level int) (*QuizBatchResponse, error) {
	if studentID == "" {
		return nil, ErrStudentRequired
	}
	if level < models.MinWordLevel || level > models.MaxWordLevel {
		return nil, ErrLevelOutOfRange
	}

	words, err := s.repo.Word().GetByLevel(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("failed to load words for level %d: %w", level, err)
	}
	if len(words) == 0 {
		return nil, ErrNoWordsAtLevel
	}

	items := buildQuizItems(words, fmt.Sprintf("level %d word", level))

	s.logger.Info("Selected training batch",
		"student_id", studentID,
		"level", level,
		"count", len(items))

	return &QuizBatchResponse{
		Items: items,
		Level: level,
		Mode:  ModeTraining,
	}, nil
}

// SelectReviewBatch picks up to 20 shuffled words the student has not yet
// answered correctly. Level nil means all levels.
func (s *trainingService) SelectReviewBatch(ctx context.Context, studentID string, level *int) (*QuizBatchResponse, error) {
	if studentID == "" {
		return nil, ErrStudentRequired
	}
	if level != nil && (*level < models.MinWordLevel || *level > models.MaxWordLevel) {
		return nil, ErrLevelOutOfRange
	}

	words, err := s.repo.Answer().GetReviewWords(ctx, studentID, level)
	if err != nil {
		return nil, fmt.Errorf("failed to load review words: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrNoReviewWords
	}

	hint := "review question"
	resp := &QuizBatchResponse{Mode: ModeReview}
	if level != nil {
		hint = fmt.Sprintf("level %d review question", *level)
		resp.Level = *level
	}
	resp.Items = buildQuizItems(words, hint)

	s.logger.Info("Selected review batch",
		"student_id", studentID,
		"count", len(resp.Items))

	return resp, nil
}

func buildQuizItems(words []*models.Word, hint string) []QuizItem {
	shuffled := make([]*models.Word, len(words))
	copy(shuffled, words)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > batchLimit {
		shuffled = shuffled[:batchLimit]
	}

	items := make([]QuizItem, 0, len(shuffled))
	for _, word := range shuffled {
		answer := ""
		if word.Meaning != nil {
			answer = *word.Meaning
		}
		items = append(items, QuizItem{
			ID:     word.ID,
			Word:   word.Text,
			Answer: answer,
			Level:  word.Level,
			Hint:   hint,
		})
	}
	return items
}

// SubmitBatch records every result of a finished batch and folds the batch
// into the student's statistics. Answer records and statistics change in one
// transaction; repeating a submission overwrites the same answer rows.
func (s *trainingService) SubmitBatch(ctx context.Context, req *SubmitBatchRequest) (*SubmissionSummary, error) {
	if len(req.Results) == 0 {
		return nil, ErrEmptyResults
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	correctAnswers := 0
	for _, result := range req.Results {
		if result.IsCorrect {
			correctAnswers++
		}
	}
	studyMinutes := int(math.Round(float64(req.TotalTimeSpentMs) / 60000.0))

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, result := range req.Results {
			isCorrect := result.IsCorrect
			answeredAt := now
			record := &models.AnswerRecord{
				StudentID:    req.StudentID,
				WordID:       result.WordID,
				IsCorrect:    &isCorrect,
				AnsweredAt:   &answeredAt,
				AnsweredFlag: false,
			}
			if err := tx.Answer().Upsert(ctx, record); err != nil {
				return fmt.Errorf("failed to upsert answer for word %d: %w", result.WordID, err)
			}
		}

		return s.applyStatistics(ctx, tx, req, correctAnswers, studyMinutes, now)
	})
	if err != nil {
		return nil, err
	}

	// Best effort after commit; failures must not fail the submission.
	event := events.NewTrainingSubmittedEvent(
		req.StudentID, req.Level, req.Mode,
		len(req.Results), correctAnswers, studyMinutes)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish training submitted event",
			"student_id", req.StudentID, "error", err)
	}
	if err := s.cache.Delete(ctx, statisticsCacheKey(req.StudentID)); err != nil {
		s.logger.Warn("Failed to invalidate statistics cache",
			"student_id", req.StudentID, "error", err)
	}

	batchAccuracy := float64(correctAnswers) / float64(len(req.Results))

	s.logger.Info("Processed training submission",
		"student_id", req.StudentID,
		"level", req.Level,
		"total_questions", len(req.Results),
		"correct_answers", correctAnswers,
		"study_time", studyMinutes)

	return &SubmissionSummary{
		TotalQuestions: len(req.Results),
		CorrectAnswers: correctAnswers,
		AccuracyRate:   int(math.Round(batchAccuracy * 100)),
		StudyTime:      studyMinutes,
	}, nil
}

// applyStatistics folds one batch into the student's statistics row under a
// row lock. The row is created on the first ever submission.
func (s *trainingService) applyStatistics(ctx context.Context, tx repositories.Repository, req *SubmitBatchRequest, correctAnswers, studyMinutes int, now time.Time) error {
	batchAccuracy := float64(correctAnswers) / float64(len(req.Results))

	record, err := tx.Statistics().GetByStudentForUpdate(ctx, req.StudentID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to load statistics for %s: %w", req.StudentID, err)
		}
		record = &models.StatisticsRecord{
			StudentID:         req.StudentID,
			TotalStudyTime:    studyMinutes,
			WeeklyStudyTime:   studyMinutes,
			AccuracyRate:      batchAccuracy,
			TodayWordsLearned: len(req.Results),
			ConsecutiveDays:   1,
			UpdatedAt:         now,
		}
		if err := tx.Statistics().Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create statistics for %s: %w", req.StudentID, err)
		}
		return nil
	}

	record.TotalStudyTime += studyMinutes
	record.AccuracyRate = (1-accuracySmoothing)*record.AccuracyRate + accuracySmoothing*batchAccuracy

	if sameDay(record.UpdatedAt, now) {
		record.TodayWordsLearned += len(req.Results)
	} else {
		record.TodayWordsLearned = len(req.Results)
		if sameDay(record.UpdatedAt.AddDate(0, 0, 1), now) {
			record.ConsecutiveDays++
		} else {
			record.ConsecutiveDays = 1
		}
	}
	if record.ConsecutiveDays == 0 {
		record.ConsecutiveDays = 1
	}

	if sameISOWeek(record.UpdatedAt, now) {
		record.WeeklyStudyTime += studyMinutes
	} else {
		record.WeeklyStudyTime = studyMinutes
	}

	record.UpdatedAt = now

	if err := tx.Statistics().Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update statistics for %s: %w", req.StudentID, err)
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// GetStatistics builds the aggregated statistics view for a student. Reads
// go through the cache; a student with no history gets an all-zero view.
func (s *trainingService) GetStatistics(ctx context.Context, studentID string) (*StudentStatisticsResponse, error) {
	if studentID == "" {
		return nil, ErrStudentRequired
	}

	cacheKey := statisticsCacheKey(studentID)
	var cached StudentStatisticsResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Statistics cache read failed", "student_id", studentID, "error", err)
	}

	record, err := s.repo.Statistics().GetByStudent(ctx, studentID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load statistics for %s: %w", studentID, err)
		}
		record = &models.StatisticsRecord{StudentID: studentID}
	}

	answerStats, err := s.repo.Answer().GetStudentAnswerStats(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer stats for %s: %w", studentID, err)
	}

	progressCounts, err := s.repo.Answer().GetLevelProgress(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load level progress for %s: %w", studentID, err)
	}

	resp := &StudentStatisticsResponse{
		StudentID:         studentID,
		TotalStudyTime:    record.TotalStudyTime,
		WeeklyStudyTime:   record.WeeklyStudyTime,
		AccuracyRate:      int(math.Round(record.AccuracyRate * 100)),
		TotalWordsLearned: answerStats.TotalWordsLearned,
		TodayWordsLearned: record.TodayWordsLearned,
		ConsecutiveDays:   record.ConsecutiveDays,
		LevelProgress:     buildLevelProgress(progressCounts),
	}

	// A stale row from a previous day must not report today's work.
	if !record.UpdatedAt.IsZero() && !sameDay(record.UpdatedAt, time.Now()) {
		resp.TodayWordsLearned = 0
	}

	if err := s.cache.Set(ctx, cacheKey, resp, statisticsCacheTTL); err != nil {
		s.logger.Warn("Statistics cache write failed", "student_id", studentID, "error", err)
	}

	return resp, nil
}

// buildLevelProgress derives percentages for every level 1..10, guarding
// against empty levels and never-answered levels.
func buildLevelProgress(counts []repositories.LevelProgressCounts) []LevelProgress {
	byLevel := make(map[int]repositories.LevelProgressCounts, len(counts))
	for _, c := range counts {
		byLevel[c.Level] = c
	}

	progress := make([]LevelProgress, 0, models.MaxWordLevel)
	for level := models.MinWordLevel; level <= models.MaxWordLevel; level++ {
		c := byLevel[level]
		p := LevelProgress{
			Level:          level,
			TotalWords:     c.TotalWords,
			AnsweredWords:  c.AnsweredWords,
			CorrectWords:   c.CorrectWords,
			RemainingWords: c.TotalWords - c.AnsweredWords,
		}
		if c.TotalWords > 0 {
			p.ProgressRate = int(math.Round(float64(c.AnsweredWords) / float64(c.TotalWords) * 100))
		}
		if c.AnsweredWords > 0 {
			p.AccuracyRate = int(math.Round(float64(c.CorrectWords) / float64(c.AnsweredWords) * 100))
		}
		progress = append(progress, p)
	}
	return progress
}
