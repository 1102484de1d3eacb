package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"one-editor-be/internal/dto"
	"one-editor-be/internal/entity"
	"one-editor-be/internal/pkg/mailer"
	"one-editor-be/internal/repository/unitofwork"
	"one-editor-be/pkg/events"
	pktNats "one-editor-be/pkg/nats"
)

// IContactService stores the user's latest contact-form message on their
// record and relays it to the support inbox.
type IContactService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.ContactRequest) (*dto.ContactResponse, error)
}

type contactService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewContactService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher) IContactService {
	return &contactService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (s *contactService) Submit(ctx context.Context, userId uuid.UUID, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	now := time.Now()
	contact := &entity.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Timestamp: now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.WorkspaceRepository().SaveContact(ctx, userId, contact); err != nil {
		return nil, err
	}

	// Relay off the request path; the stored copy is the durable one.
	go func() {
		if err := s.emailService.SendContactMessage(req.Name, req.Email, req.Message); err != nil {
			fmt.Printf("Error relaying contact message: %v\n", err)
		}
	}()

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeContactMessage,
			Data: map[string]interface{}{
				"user_id": userId,
				"email":   req.Email,
			},
			OccurredAt: now,
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish CONTACT_MESSAGE event: %v\n", err)
		}
	}

	return &dto.ContactResponse{SentAt: now}, nil
}
