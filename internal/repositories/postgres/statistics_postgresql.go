package postgres

import (
	"context"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatisticsPostgreSQL struct {
	db *gorm.DB
}

func NewStatisticsPostgreSQL(db *gorm.DB) repositories.StatisticsRepository {
	return &StatisticsPostgreSQL{db: db}
}

func (s StatisticsPostgreSQL) GetByStudent(ctx context.Context, studentID string) (*models.StatisticsRecord, error) {
	var record models.StatisticsRecord
	if err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByStudentForUpdate locks the row so two concurrent submissions cannot
// both read the old accuracy and lose an update.
func (s StatisticsPostgreSQL) GetByStudentForUpdate(ctx context.Context, studentID string) (*models.StatisticsRecord, error) {
	var record models.StatisticsRecord
	if err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ?", studentID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s StatisticsPostgreSQL) Create(ctx context.Context, record *models.StatisticsRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s StatisticsPostgreSQL) Update(ctx context.Context, record *models.StatisticsRecord) error {
	return s.db.WithContext(ctx).Save(record).Error
}

func (s StatisticsPostgreSQL) ListAll(ctx context.Context) ([]*models.StatisticsRecord, error) {
	var records []*models.StatisticsRecord
	if err := s.db.WithContext(ctx).
		Order("student_id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
