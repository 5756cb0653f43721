package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	TopicSessionCreated  = "sessions.created"
	TopicSessionsRevoked = "sessions.revoked"
)

type SessionCreatedEvent struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type SessionsRevokedEvent struct {
	UserID     string   `json:"user_id"`
	SessionIDs []string `json:"session_ids"`
}

// WatermillPublisher emits session lifecycle events so other instances can
// react to revocations without polling the store.
type WatermillPublisher struct {
	publisher message.Publisher
}

func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

func (p *WatermillPublisher) SessionCreated(_ context.Context, userID, sessionID string) error {
	return p.publish(TopicSessionCreated, SessionCreatedEvent{
		UserID:    userID,
		SessionID: sessionID,
	})
}

func (p *WatermillPublisher) SessionsRevoked(_ context.Context, userID string, sessionIDs []string) error {
	return p.publish(TopicSessionsRevoked, SessionsRevokedEvent{
		UserID:     userID,
		SessionIDs: sessionIDs,
	})
}

func (p *WatermillPublisher) publish(topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
