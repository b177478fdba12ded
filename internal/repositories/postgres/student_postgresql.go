package postgres

import (
	"context"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"gorm.io/gorm"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Create(student).Error
}

func (s StudentPostgreSQL) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Save(student).Error
}

func (s StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Student{})
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("student_id")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (s StudentPostgreSQL) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("is_active = ?", true).
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s StudentPostgreSQL) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
