package postgres

import (
	"context"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"gorm.io/gorm"
)

type WordPostgreSQL struct {
	db *gorm.DB
}

func NewWordPostgreSQL(db *gorm.DB) repositories.WordRepository {
	return &WordPostgreSQL{db: db}
}

func (w WordPostgreSQL) Create(ctx context.Context, word *models.Word) error {
	return w.db.WithContext(ctx).Create(word).Error
}

func (w WordPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Word, error) {
	var word models.Word
	if err := w.db.WithContext(ctx).First(&word, id).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

func (w WordPostgreSQL) Update(ctx context.Context, word *models.Word) error {
	return w.db.WithContext(ctx).Save(word).Error
}

func (w WordPostgreSQL) Delete(ctx context.Context, id uint) error {
	return w.db.WithContext(ctx).Delete(&models.Word{}, id).Error
}

func (w WordPostgreSQL) List(ctx context.Context, filters repositories.WordFilters) ([]*models.Word, int64, error) {
	var words []*models.Word
	var total int64

	query := w.db.WithContext(ctx).Model(&models.Word{})
	if filters.Level != nil {
		query = query.Where("level = ?", *filters.Level)
	}
	if filters.Search != "" {
		query = query.Where("text ILIKE ?", "%"+filters.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortable := map[string]bool{"created_at": true, "text": true, "level": true}
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, sortable, filters.Limit, filters.Offset)

	if err := query.Find(&words).Error; err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

func (w WordPostgreSQL) GetByLevel(ctx context.Context, level int) ([]*models.Word, error) {
	var words []*models.Word
	if err := w.db.WithContext(ctx).
		Where("level = ?", level).
		Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (w WordPostgreSQL) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := w.db.WithContext(ctx).
		Model(&models.Word{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (w WordPostgreSQL) CountByLevel(ctx context.Context) (map[int]int, error) {
	type levelCount struct {
		Level int
		Count int
	}

	var rows []levelCount
	if err := w.db.WithContext(ctx).
		Model(&models.Word{}).
		Select("level, COUNT(*) AS count").
		Group("level").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Level] = row.Count
	}
	return counts, nil
}
