package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/events"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

type messageService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewMessageService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) MessageService {
	return &messageService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// BroadcastMessage stores the message and announces it to every active
// student through the event bus.
func (s *messageService) BroadcastMessage(ctx context.Context, senderID string, req *BroadcastMessageRequest) (*models.Message, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	message := &models.Message{
		Title:    req.Title,
		Content:  req.Content,
		SenderID: senderID,
		Priority: req.Priority,
	}
	if message.Priority == "" {
		message.Priority = models.PriorityNormal
	}
	if req.Metadata != nil {
		metadata, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message metadata: %w", err)
		}
		message.Metadata = datatypes.JSON(metadata)
	}

	if err := s.repo.Message().Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	recipientIDs, err := s.repo.Student().ListActiveIDs(ctx)
	if err != nil {
		s.logger.Warn("Failed to list recipients for broadcast",
			"message_id", message.ID, "error", err)
		recipientIDs = nil
	}

	event := events.NewMessageBroadcastEvent(message, recipientIDs)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish message broadcast event",
			"message_id", message.ID, "error", err)
	}

	s.logger.Info("Broadcast message",
		"message_id", message.ID,
		"priority", message.Priority,
		"recipients", len(recipientIDs))

	return message, nil
}

func (s *messageService) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	message, err := s.repo.Message().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to load message %d: %w", id, err)
	}
	return message, nil
}

func (s *messageService) ListMessages(ctx context.Context, filters repositories.MessageFilters) (*MessageListResponse, error) {
	messages, total, err := s.repo.Message().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return &MessageListResponse{Messages: messages, Total: total}, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, id uint) error {
	if _, err := s.GetMessage(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Message().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete message %d: %w", id, err)
	}
	s.logger.Info("Deleted message", "message_id", id)
	return nil
}
