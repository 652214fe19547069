package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// MessageService owns the message board.
type MessageService struct {
	repo    ports.MessageRepository
	signals ports.SignalPublisher
	logger  zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, signals ports.SignalPublisher, logger zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, signals: signals, logger: logger}
}

func (s *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	return s.repo.List(ctx)
}

func (s *MessageService) Create(ctx context.Context, email, text string) (*domain.Message, error) {
	message := &domain.Message{
		ID:    uuid.NewString(),
		Email: email,
		Text:  text,
		Date:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if err := s.signals.Publish(ctx, domain.MessageCreated); err != nil {
		s.logger.Warn().Err(err).Msg("mutation signal not published")
	}
	return message, nil
}

