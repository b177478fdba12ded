package events

import (
	"time"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/google/uuid"
)

// EventType represents the kinds of domain events this service emits
type EventType string

const (
	// Training events
	EventTrainingSubmitted EventType = "training.submitted"

	// Word bank events
	EventWordRegistered EventType = "word.registered"

	// Account events
	EventStudentRegistered EventType = "student.registered"

	// Message events
	EventMessageBroadcast EventType = "message.broadcast"
)

// Event is the envelope shared by all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

const eventSource = "vocab-training-service"

// Event payloads

type TrainingSubmittedEvent struct {
	StudentID      string    `json:"student_id"`
	Level          int       `json:"level"`
	Mode           string    `json:"mode"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	StudyTime      int       `json:"study_time"` // minutes
	SubmittedAt    time.Time `json:"submitted_at"`
}

type WordRegisteredEvent struct {
	WordID       uint      `json:"word_id"`
	Text         string    `json:"text"`
	Level        int       `json:"level"`
	SeededCount  int       `json:"seeded_count"` // placeholder answer rows created
	RegisteredAt time.Time `json:"registered_at"`
}

type StudentRegisteredEvent struct {
	StudentID    string    `json:"student_id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

type MessageBroadcastEvent struct {
	MessageID    uint                   `json:"message_id"`
	Title        string                 `json:"title"`
	Priority     models.MessagePriority `json:"priority"`
	SenderID     string                 `json:"sender_id"`
	RecipientIDs []string               `json:"recipient_ids"`
	SentAt       time.Time              `json:"sent_at"`
}

// Event factory functions

func NewTrainingSubmittedEvent(studentID string, level int, mode string, totalQuestions, correctAnswers, studyTime int) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      EventTrainingSubmitted,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data: TrainingSubmittedEvent{
			StudentID:      studentID,
			Level:          level,
			Mode:           mode,
			TotalQuestions: totalQuestions,
			CorrectAnswers: correctAnswers,
			StudyTime:      studyTime,
			SubmittedAt:    time.Now(),
		},
	}
}

func NewWordRegisteredEvent(wordID uint, text string, level, seededCount int) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      EventWordRegistered,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data: WordRegisteredEvent{
			WordID:       wordID,
			Text:         text,
			Level:        level,
			SeededCount:  seededCount,
			RegisteredAt: time.Now(),
		},
	}
}

func NewStudentRegisteredEvent(studentID, name string) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      EventStudentRegistered,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data: StudentRegisteredEvent{
			StudentID:    studentID,
			Name:         name,
			RegisteredAt: time.Now(),
		},
	}
}

func NewMessageBroadcastEvent(message *models.Message, recipientIDs []string) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      EventMessageBroadcast,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data: MessageBroadcastEvent{
			MessageID:    message.ID,
			Title:        message.Title,
			Priority:     message.Priority,
			SenderID:     message.SenderID,
			RecipientIDs: recipientIDs,
			SentAt:       time.Now(),
		},
	}
}

func generateEventID() string {
	return uuid.NewString()
}
