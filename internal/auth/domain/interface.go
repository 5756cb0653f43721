package domain

//go:generate mockgen -destination=../../mocks/mock_session_repository.go -package=mocks github.com/vyadl/idli-back/internal/auth/domain SessionRepository
//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/vyadl/idli-back/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_blacklist.go -package=mocks github.com/vyadl/idli-back/internal/auth/domain Blacklist
//go:generate mockgen -destination=../../mocks/mock_event_publisher.go -package=mocks github.com/vyadl/idli-back/internal/auth/domain EventPublisher

import (
	"context"
	"time"
)

// SessionRepository owns persisted session records. No other component holds
// authoritative session state.
type SessionRepository interface {
	Insert(ctx context.Context, session *Session) error
	// GetByAccessToken returns (nil, nil) when no session holds the token.
	GetByAccessToken(ctx context.Context, accessToken string) (*Session, error)
	GetAllByUserID(ctx context.Context, userID string) ([]*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error
	DeleteAllByUserID(ctx context.Context, userID string) error
}

type UserRepository interface {
	// GetByEmail returns (nil, nil) when no user has the email.
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// Blacklist records access tokens revoked before their natural expiry. Adds
// are idempotent; an entry is never needed past the access token's TTL, so
// implementations may prune on that horizon.
type Blacklist interface {
	Add(ctx context.Context, accessToken string, ttl time.Duration) error
	Contains(ctx context.Context, accessToken string) (bool, error)
}

// EventPublisher notifies other components about session lifecycle changes.
type EventPublisher interface {
	SessionCreated(ctx context.Context, userID, sessionID string) error
	SessionsRevoked(ctx context.Context, userID string, sessionIDs []string) error
}
