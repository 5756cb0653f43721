package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vyadl/idli-back/internal/auth/domain"
	"github.com/vyadl/idli-back/internal/auth/dto"
	autherror "github.com/vyadl/idli-back/internal/errors"
	"github.com/vyadl/idli-back/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

type SessionService struct {
	sessions  domain.SessionRepository
	users     domain.UserRepository
	tokens    TokenGenerator
	blacklist domain.Blacklist
	events    domain.EventPublisher
}

func NewSessionService(
	sessions domain.SessionRepository,
	users domain.UserRepository,
	tokens TokenGenerator,
	blacklist domain.Blacklist,
	events domain.EventPublisher,
) *SessionService {
	return &SessionService{
		sessions:  sessions,
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
		events:    events,
	}
}

// RoleCapabilities maps role names to the capability labels consumed by
// downstream authorization: one "ROLE_<UPPERCASED_NAME>" label per role,
// input order preserved, no deduplication.
func RoleCapabilities(roles []string) []string {
	capabilities := make([]string, 0, len(roles))
	for _, role := range roles {
		capabilities = append(capabilities, "ROLE_"+strings.ToUpper(role))
	}

	return capabilities
}

func (s *SessionService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), constant.PasswordHashCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hashed),
		Roles:        []string{constant.DefaultUserRole},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *SessionService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	return s.CreateSession(ctx, user, input.Fingerprint)
}

// CreateSession mints an access/refresh pair for an authenticated user and
// persists the session record. It never consults sibling sessions: concurrent
// logins from multiple devices each produce an independent session.
func (s *SessionService) CreateSession(ctx context.Context, user *domain.User, fingerprint string) (*dto.TokenResponse, error) {
	accessToken, _, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		Email:            user.Email,
		Fingerprint:      fingerprint,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiredAt: now.Add(s.tokens.RefreshTokenTTL()),
		CreatedAt:        now,
	}

	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, user.ID, session.ID)

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Capabilities: RoleCapabilities(user.Roles),
	}, nil
}

// CheckValid looks up the session holding the presented access token and
// reports whether it belongs to the given user and device. The matched
// session is returned regardless of the verdict; logout needs its identity
// for exclusion logic.
//
// The presented refresh token is accepted but not compared; nothing matches
// on it today and comparing it here would silently change logout behavior.
func (s *SessionService) CheckValid(
	ctx context.Context,
	userID, accessToken, refreshToken, fingerprint string,
) (*domain.Session, bool, error) {
	session, err := s.sessions.GetByAccessToken(ctx, accessToken)
	if err != nil {
		return nil, false, err
	}
	if session == nil {
		return nil, false, autherror.ErrSessionNotFound
	}

	isValid := session.UserID == userID &&
		session.AccessToken == accessToken &&
		session.Fingerprint == fingerprint

	return session, isValid, nil
}

// Logout destroys sessions according to the requested mode.
//
// Forced logout trusts the caller's authorization out-of-band and only
// permits mode "all". On the authenticated path the mode conditionals are
// non-exclusive: "all" first removes every other session, then falls through
// to removing the current one, emptying the account.
func (s *SessionService) Logout(ctx context.Context, input dto.LogoutInput) (*dto.LogoutResponse, error) {
	switch input.Mode {
	case constant.LogoutModeCurrent, constant.LogoutModeAll, constant.LogoutModeAllExceptCurrent:
	default:
		return nil, autherror.ErrInvalidLogoutMode
	}

	if input.Forced {
		return s.logoutForced(ctx, input)
	}

	current, isValid, err := s.CheckValid(ctx, input.UserID, input.AccessToken, input.RefreshToken, input.Fingerprint)
	if err != nil {
		return nil, err
	}
	if !isValid {
		return nil, autherror.ErrInvalidSession
	}

	var revoked []string

	if input.Mode == constant.LogoutModeAllExceptCurrent || input.Mode == constant.LogoutModeAll {
		sessions, err := s.sessions.GetAllByUserID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}

		others := make([]*domain.Session, 0, len(sessions))
		for _, session := range sessions {
			if session.ID != current.ID {
				others = append(others, session)
			}
		}

		if err := s.blacklistSessions(ctx, others); err != nil {
			return nil, err
		}

		if len(others) > 0 {
			if err := s.sessions.DeleteByIDs(ctx, sessionIDs(others)); err != nil {
				return nil, err
			}
		}

		revoked = append(revoked, sessionIDs(others)...)
	}

	if input.Mode == constant.LogoutModeAll || input.Mode == constant.LogoutModeCurrent {
		if err := s.blacklist.Add(ctx, current.AccessToken, s.tokens.AccessTokenTTL()); err != nil {
			return nil, err
		}

		if err := s.sessions.Delete(ctx, current.ID); err != nil {
			return nil, err
		}

		revoked = append(revoked, current.ID)
	}

	s.publishRevoked(ctx, input.UserID, revoked)

	return &dto.LogoutResponse{Message: logoutMessage(input.Mode)}, nil
}

func (s *SessionService) logoutForced(ctx context.Context, input dto.LogoutInput) (*dto.LogoutResponse, error) {
	if input.Mode != constant.LogoutModeAll {
		return nil, autherror.ErrInvalidLogoutMode
	}

	sessions, err := s.sessions.GetAllByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.blacklistSessions(ctx, sessions); err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteAllByUserID(ctx, input.UserID); err != nil {
		return nil, err
	}

	s.publishRevoked(ctx, input.UserID, sessionIDs(sessions))

	return &dto.LogoutResponse{Message: constant.MsgLoggedOutAll}, nil
}

// UserSessions lists the live sessions of a user for the admin surface.
func (s *SessionService) UserSessions(ctx context.Context, userID string) ([]dto.SessionOutput, error) {
	sessions, err := s.sessions.GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, dto.SessionOutput{
			ID:               session.ID,
			Fingerprint:      session.Fingerprint,
			CreatedAt:        session.CreatedAt,
			RefreshExpiredAt: session.RefreshExpiredAt,
		})
	}

	return out, nil
}

func (s *SessionService) UserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *SessionService) blacklistSessions(ctx context.Context, sessions []*domain.Session) error {
	for _, session := range sessions {
		if err := s.blacklist.Add(ctx, session.AccessToken, s.tokens.AccessTokenTTL()); err != nil {
			return err
		}
	}

	return nil
}

func (s *SessionService) publishCreated(ctx context.Context, userID, sessionID string) {
	if s.events == nil {
		return
	}
	if err := s.events.SessionCreated(ctx, userID, sessionID); err != nil {
		log.Printf("warn: failed to publish session created event for user %s: %v", userID, err)
	}
}

func (s *SessionService) publishRevoked(ctx context.Context, userID string, sessionIDs []string) {
	if s.events == nil || len(sessionIDs) == 0 {
		return
	}
	if err := s.events.SessionsRevoked(ctx, userID, sessionIDs); err != nil {
		log.Printf("warn: failed to publish sessions revoked event for user %s: %v", userID, err)
	}
}

func sessionIDs(sessions []*domain.Session) []string {
	ids := make([]string, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID)
	}

	return ids
}

func logoutMessage(mode string) string {
	switch mode {
	case constant.LogoutModeAll:
		return constant.MsgLoggedOutAll
	case constant.LogoutModeAllExceptCurrent:
		return constant.MsgLoggedOutAllExceptCurrent
	default:
		return constant.MsgLoggedOutCurrent
	}
}
