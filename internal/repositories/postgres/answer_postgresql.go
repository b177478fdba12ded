package postgres

import (
	"context"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerPostgreSQL(db *gorm.DB) repositories.AnswerRepository {
	return &AnswerPostgreSQL{db: db}
}

// Upsert relies on the unique index over (student_id, word_id) so two racing
// submissions for the same pair converge to last-write-wins instead of
// creating duplicate rows.
func (a AnswerPostgreSQL) Upsert(ctx context.Context, record *models.AnswerRecord) error {
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "word_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_correct", "answered_at", "answered_flag", "updated_at"}),
	}).Create(record).Error
}

func (a AnswerPostgreSQL) GetByStudentAndWord(ctx context.Context, studentID string, wordID uint) (*models.AnswerRecord, error) {
	var record models.AnswerRecord
	if err := a.db.WithContext(ctx).
		Where("student_id = ? AND word_id = ?", studentID, wordID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (a AnswerPostgreSQL) SeedForStudents(ctx context.Context, wordID uint, studentIDs []string) error {
	if len(studentIDs) == 0 {
		return nil
	}

	records := make([]*models.AnswerRecord, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		records = append(records, &models.AnswerRecord{
			StudentID:    studentID,
			WordID:       wordID,
			AnsweredFlag: true,
		})
	}

	// DoNothing keeps any row that already holds an answer.
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "word_id"}},
		DoNothing: true,
	}).CreateInBatches(records, 500).Error
}

func (a AnswerPostgreSQL) SeedForWords(ctx context.Context, studentID string, wordIDs []uint) error {
	if len(wordIDs) == 0 {
		return nil
	}

	records := make([]*models.AnswerRecord, 0, len(wordIDs))
	for _, wordID := range wordIDs {
		records = append(records, &models.AnswerRecord{
			StudentID:    studentID,
			WordID:       wordID,
			AnsweredFlag: true,
		})
	}

	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "word_id"}},
		DoNothing: true,
	}).CreateInBatches(records, 500).Error
}

// GetReviewWords selects with left-join semantics: a missing record, a seeded
// NULL record, and an incorrect answer are all reviewable; only is_correct =
// true excludes a word.
func (a AnswerPostgreSQL) GetReviewWords(ctx context.Context, studentID string, level *int) ([]*models.Word, error) {
	var words []*models.Word

	query := a.db.WithContext(ctx).Model(&models.Word{}).
		Joins("LEFT JOIN answer_records ar ON ar.word_id = words.id AND ar.student_id = ?", studentID).
		Where("ar.id IS NULL OR ar.is_correct IS NULL OR ar.is_correct = ?", false)
	if level != nil {
		query = query.Where("words.level = ?", *level)
	}

	if err := query.Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (a AnswerPostgreSQL) GetStudentAnswerStats(ctx context.Context, studentID string) (*repositories.StudentAnswerStats, error) {
	var stats repositories.StudentAnswerStats

	err := a.db.WithContext(ctx).
		Model(&models.AnswerRecord{}).
		Where("student_id = ?", studentID).
		Select(`COALESCE(SUM(CASE WHEN answered_flag = false THEN 1 ELSE 0 END), 0) AS total_words_learned,
			COALESCE(SUM(CASE WHEN is_correct = true THEN 1 ELSE 0 END), 0) AS correct_words,
			COALESCE(SUM(CASE WHEN is_correct = false THEN 1 ELSE 0 END), 0) AS incorrect_words`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetLevelProgress aggregates the word bank against the student's answers in
// one pass. Levels with no words produce no row; the service fills the gaps.
func (a AnswerPostgreSQL) GetLevelProgress(ctx context.Context, studentID string) ([]repositories.LevelProgressCounts, error) {
	var rows []repositories.LevelProgressCounts

	err := a.db.WithContext(ctx).Raw(`
		SELECT words.level AS level,
			COUNT(words.id) AS total_words,
			COALESCE(SUM(CASE WHEN ar.answered_flag = false THEN 1 ELSE 0 END), 0) AS answered_words,
			COALESCE(SUM(CASE WHEN ar.is_correct = true THEN 1 ELSE 0 END), 0) AS correct_words
		FROM words
		LEFT JOIN answer_records ar ON ar.word_id = words.id AND ar.student_id = ?
		WHERE words.deleted_at IS NULL
		GROUP BY words.level
		ORDER BY words.level`, studentID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
