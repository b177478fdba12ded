package postgres

import (
	"context"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db         *gorm.DB
	word       repositories.WordRepository
	answer     repositories.AnswerRepository
	statistics repositories.StatisticsRepository
	student    repositories.StudentRepository
	message    repositories.MessageRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:         db,
		word:       NewWordPostgreSQL(db),
		answer:     NewAnswerPostgreSQL(db),
		statistics: NewStatisticsPostgreSQL(db),
		student:    NewStudentPostgreSQL(db),
		message:    NewMessagePostgreSQL(db),
	}
}

func (r *repository) Word() repositories.WordRepository             { return r.word }
func (r *repository) Answer() repositories.AnswerRepository         { return r.answer }
func (r *repository) Statistics() repositories.StatisticsRepository { return r.statistics }
func (r *repository) Student() repositories.StudentRepository       { return r.student }
func (r *repository) Message() repositories.MessageRepository       { return r.message }

// WithTransaction runs fn against a repository bound to a single database
// transaction; fn returning an error rolls everything back.
func (r *repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// applyPaginationAndSort applies shared limit/offset/sort handling; sortable
// columns must be allow-listed by the caller.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]bool, limit, offset int) *gorm.DB {
	if sortBy != "" && allowed[sortBy] {
		order := sortBy
		if sortOrder == "desc" {
			order += " DESC"
		}
		query = query.Order(order)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
