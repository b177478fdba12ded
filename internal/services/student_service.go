package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/events"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

type studentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewStudentService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) StudentService {
	return &studentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// RegisterStudent creates the account and seeds a placeholder answer record
// for every existing word, so the new student starts with a full review pool.
func (s *studentService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*models.Student, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Student().ExistsByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student %s: %w", req.StudentID, err)
	}
	if exists {
		return nil, ErrStudentExists
	}

	student := &models.Student{
		StudentID: req.StudentID,
		Name:      req.Name,
		IsActive:  true,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Student().Create(ctx, student); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrStudentExists
			}
			return fmt.Errorf("failed to create student: %w", err)
		}

		wordIDs, err := tx.Word().ListIDs(ctx)
		if err != nil {
			return fmt.Errorf("failed to list word ids: %w", err)
		}
		if len(wordIDs) == 0 {
			return nil
		}

		if err := tx.Answer().SeedForWords(ctx, student.StudentID, wordIDs); err != nil {
			return fmt.Errorf("failed to seed answer records: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := events.NewStudentRegisteredEvent(student.StudentID, student.Name)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish student registered event",
			"student_id", student.StudentID, "error", err)
	}

	s.logger.Info("Registered student", "student_id", student.StudentID)
	return student, nil
}

func (s *studentService) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.repo.Student().GetByStudentID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student %s: %w", studentID, err)
	}
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error) {
	students, total, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return &StudentListResponse{Students: students, Total: total}, nil
}

func (s *studentService) DeactivateStudent(ctx context.Context, studentID string) error {
	student, err := s.GetStudent(ctx, studentID)
	if err != nil {
		return err
	}
	student.IsActive = false
	if err := s.repo.Student().Update(ctx, student); err != nil {
		return fmt.Errorf("failed to deactivate student %s: %w", studentID, err)
	}
	s.logger.Info("Deactivated student", "student_id", studentID)
	return nil
}

func (s *studentService) RecordLogin(ctx context.Context, studentID string) error {
	student, err := s.GetStudent(ctx, studentID)
	if err != nil {
		return err
	}
	now := time.Now()
	student.LastLoginAt = &now
	if err := s.repo.Student().Update(ctx, student); err != nil {
		return fmt.Errorf("failed to record login for %s: %w", studentID, err)
	}
	return nil
}
