package services

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/bp22013/english-speaking-app.Ver2-sub001/internal/errors"
)

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes via IsNotFound / IsInvalidInput.
var (
	ErrNoWordsAtLevel  = errors.New("no words registered at this level")
	ErrNoReviewWords   = errors.New("no review words for this student")
	ErrEmptyResults    = errors.New("submission contains no results")
	ErrStudentRequired = errors.New("student id is required")
	ErrLevelOutOfRange = errors.New("level must be between 1 and 10")

	ErrWordNotFound    = errors.New("word not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentExists   = errors.New("student already registered")
	ErrMessageNotFound = errors.New("message not found")

	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// IsNotFound reports whether err should translate to 404
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWordNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrMessageNotFound) ||
		errors.Is(err, ErrNoWordsAtLevel) ||
		errors.Is(err, ErrNoReviewWords)
}

// IsInvalidInput reports whether err should translate to 400
func IsInvalidInput(err error) bool {
	if errors.Is(err, ErrEmptyResults) ||
		errors.Is(err, ErrStudentRequired) ||
		errors.Is(err, ErrLevelOutOfRange) ||
		errors.Is(err, ErrStudentExists) ||
		errors.Is(err, ErrUnsupportedFormat) {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return true
	}

	var appValidationErrs apperrors.ValidationErrors
	return errors.As(err, &appValidationErrs)
}
