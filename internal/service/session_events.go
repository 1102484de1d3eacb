package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// SessionEvent announces an auth-state transition on the in-process bus.
// The workspace consumer reacts by loading the user's remote notes on
// sign-in and dropping the session back to the local default on sign-out.
type SessionEvent struct {
	SignedIn bool      `json:"signed_in"`
	UserId   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	At       time.Time `json:"at"`
}

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	workspaceService IWorkspaceService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	workspaceService IWorkspaceService,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		workspaceService: workspaceService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event SessionEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if event.SignedIn {
		log.Printf("[INFO] Session sign-in for user %s, loading remote notes", event.UserId)
		if err := cs.workspaceService.LoadRemote(ctx, event.UserId); err != nil {
			log.Printf("[ERROR] Failed to load remote notes for %s: %v", event.UserId, err)
			msg.Nack() // Nack for retriable errors
			return
		}
	} else {
		log.Printf("[INFO] Session sign-out for user %s, resetting workspace", event.UserId)
		cs.workspaceService.ResetToDefault(event.UserId)
	}

	msg.Ack()
}
