package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vyadl/idli-back/internal/auth/domain"
	"github.com/vyadl/idli-back/internal/auth/dto"
	"github.com/vyadl/idli-back/internal/auth/handler"
	"github.com/vyadl/idli-back/internal/auth/service"
	"github.com/vyadl/idli-back/internal/mocks"
	"github.com/vyadl/idli-back/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handler-test-secret"

type handlerFixture struct {
	sessions  *mocks.MockSessionRepository
	users     *mocks.MockUserRepository
	blacklist *mocks.MockBlacklist
	tokens    *service.TokenService
	app       *fiber.App
}

func newHandlerFixture(t *testing.T, ctrl *gomock.Controller) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		sessions:  mocks.NewMockSessionRepository(ctrl),
		users:     mocks.NewMockUserRepository(ctrl),
		blacklist: mocks.NewMockBlacklist(ctrl),
		tokens:    service.NewTokenService(testSecret, 30, 43200),
	}

	sessionService := service.NewSessionService(f.sessions, f.users, f.tokens, f.blacklist, nil)
	authHandler := handler.NewAuthHandler(sessionService, f.tokens, f.blacklist)

	f.app = fiber.New()
	handler.RegisterRoutes(f.app, authHandler)

	return f
}

func (f *handlerFixture) accessTokenFor(t *testing.T, userID string) string {
	t.Helper()

	token, _, err := f.tokens.Generate(userID)
	require.NoError(t, err)

	return token
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(body)
}

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(t, ctrl)

	t.Run("success", func(t *testing.T) {
		input := dto.RegisterInput{Email: "test@example.com", Password: "password"}

		f.users.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		req := httptest.NewRequest("POST", "/api/v1/register", jsonBody(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("bad request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/register", bytes.NewReader([]byte("")))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("email already in use", func(t *testing.T) {
		input := dto.RegisterInput{Email: "taken@example.com", Password: "password"}

		f.users.EXPECT().GetByEmail(gomock.Any(), input.Email).
			Return(&domain.User{ID: "user-1", Email: input.Email}, nil)

		req := httptest.NewRequest("POST", "/api/v1/register", jsonBody(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(t, ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), constant.PasswordHashCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: string(hash),
		Roles:        []string{"admin"},
	}

	t.Run("success", func(t *testing.T) {
		input := dto.LoginInput{Email: user.Email, Password: "password"}

		f.users.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(user, nil)
		f.sessions.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		req := httptest.NewRequest("POST", "/api/v1/login", jsonBody(t, input))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(constant.FingerprintHeader, "fp-1")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var tokenPair dto.TokenResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokenPair))
		assert.NotEmpty(t, tokenPair.AccessToken)
		assert.NotEmpty(t, tokenPair.RefreshToken)
		assert.Equal(t, []string{"ROLE_ADMIN"}, tokenPair.Capabilities)
	})

	t.Run("unauthorized - invalid password", func(t *testing.T) {
		input := dto.LoginInput{Email: user.Email, Password: "wrong-password"}

		f.users.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(user, nil)

		req := httptest.NewRequest("POST", "/api/v1/login", jsonBody(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unauthorized - unknown email", func(t *testing.T) {
		input := dto.LoginInput{Email: "nobody@example.com", Password: "password"}

		f.users.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)

		req := httptest.NewRequest("POST", "/api/v1/login", jsonBody(t, input))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(t, ctrl)

	token := f.accessTokenFor(t, "user-123")
	session := &domain.Session{
		ID:          "sess-1",
		UserID:      "user-123",
		Fingerprint: "fp-1",
		AccessToken: token,
	}

	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/v1/session", nil)

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("blacklisted token", func(t *testing.T) {
		f.blacklist.EXPECT().Contains(gomock.Any(), token).Return(true, nil)

		req := httptest.NewRequest("DELETE", "/api/v1/session", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		f.blacklist.EXPECT().Contains(gomock.Any(), "not-a-jwt").Return(false, nil)

		req := httptest.NewRequest("DELETE", "/api/v1/session", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-jwt")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown mode", func(t *testing.T) {
		f.blacklist.EXPECT().Contains(gomock.Any(), token).Return(false, nil)

		req := httptest.NewRequest("DELETE", "/api/v1/session?mode=everything", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		req.Header.Set(constant.FingerprintHeader, "fp-1")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("current mode success", func(t *testing.T) {
		f.blacklist.EXPECT().Contains(gomock.Any(), token).Return(false, nil)
		f.sessions.EXPECT().GetByAccessToken(gomock.Any(), token).Return(session, nil)
		f.blacklist.EXPECT().Add(gomock.Any(), token, 30*time.Minute).Return(nil)
		f.sessions.EXPECT().Delete(gomock.Any(), session.ID).Return(nil)

		req := httptest.NewRequest("DELETE", "/api/v1/session", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		req.Header.Set(constant.FingerprintHeader, "fp-1")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out dto.LogoutResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, constant.MsgLoggedOutCurrent, out.Message)
	})

	t.Run("fingerprint mismatch returns the invalid data message", func(t *testing.T) {
		f.blacklist.EXPECT().Contains(gomock.Any(), token).Return(false, nil)
		f.sessions.EXPECT().GetByAccessToken(gomock.Any(), token).Return(session, nil)

		req := httptest.NewRequest("DELETE", "/api/v1/session", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		req.Header.Set(constant.FingerprintHeader, "other-device")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"message": "The data is invalid"}`, string(body))
	})

	t.Run("session not found returns the invalid data message", func(t *testing.T) {
		f.blacklist.EXPECT().Contains(gomock.Any(), token).Return(false, nil)
		f.sessions.EXPECT().GetByAccessToken(gomock.Any(), token).Return(nil, nil)

		req := httptest.NewRequest("DELETE", "/api/v1/session", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		req.Header.Set(constant.FingerprintHeader, "fp-1")

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"message": "The data is invalid"}`, string(body))
	})
}

func TestForceLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(t, ctrl)

	adminToken := f.accessTokenFor(t, "admin-1")
	admin := &domain.User{ID: "admin-1", Email: "admin@example.com", Roles: []string{constant.AdminRoleName}}

	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/v1/admin/user/user-123/sessions", nil)

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("forbidden for non-admin", func(t *testing.T) {
		userToken := f.accessTokenFor(t, "user-9")

		f.blacklist.EXPECT().Contains(gomock.Any(), userToken).Return(false, nil)
		f.users.EXPECT().GetByID(gomock.Any(), "user-9").
			Return(&domain.User{ID: "user-9", Roles: []string{"user"}}, nil)

		req := httptest.NewRequest("DELETE", "/api/v1/admin/user/user-123/sessions", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+userToken)

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin destroys every session of the user", func(t *testing.T) {
		target := []*domain.Session{
			{ID: "sess-a", UserID: "user-123", AccessToken: "token-a"},
			{ID: "sess-b", UserID: "user-123", AccessToken: "token-b"},
		}

		f.blacklist.EXPECT().Contains(gomock.Any(), adminToken).Return(false, nil)
		f.users.EXPECT().GetByID(gomock.Any(), "admin-1").Return(admin, nil)
		f.sessions.EXPECT().GetAllByUserID(gomock.Any(), "user-123").Return(target, nil)
		f.blacklist.EXPECT().Add(gomock.Any(), "token-a", 30*time.Minute).Return(nil)
		f.blacklist.EXPECT().Add(gomock.Any(), "token-b", 30*time.Minute).Return(nil)
		f.sessions.EXPECT().DeleteAllByUserID(gomock.Any(), "user-123").Return(nil)

		req := httptest.NewRequest("DELETE", "/api/v1/admin/user/user-123/sessions", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out dto.LogoutResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, constant.MsgLoggedOutAll, out.Message)
	})
}

func TestGetUserSessionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHandlerFixture(t, ctrl)

	adminToken := f.accessTokenFor(t, "admin-1")
	admin := &domain.User{ID: "admin-1", Email: "admin@example.com", Roles: []string{constant.AdminRoleName}}

	t.Run("lists sessions for the user", func(t *testing.T) {
		now := time.Now()
		stored := []*domain.Session{
			{ID: "sess-a", UserID: "user-123", Fingerprint: "fp-1", CreatedAt: now},
			{ID: "sess-b", UserID: "user-123", Fingerprint: "fp-2", CreatedAt: now},
		}

		f.blacklist.EXPECT().Contains(gomock.Any(), adminToken).Return(false, nil)
		f.users.EXPECT().GetByID(gomock.Any(), "admin-1").Return(admin, nil)
		f.sessions.EXPECT().GetAllByUserID(gomock.Any(), "user-123").Return(stored, nil)

		req := httptest.NewRequest("GET", "/api/v1/admin/user/user-123/sessions", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out []dto.SessionOutput
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out, 2)
		assert.Equal(t, "fp-1", out[0].Fingerprint)
	})

	t.Run("store error is a 500", func(t *testing.T) {
		f.blacklist.EXPECT().Contains(gomock.Any(), adminToken).Return(false, nil)
		f.users.EXPECT().GetByID(gomock.Any(), "admin-1").Return(admin, nil)
		f.sessions.EXPECT().GetAllByUserID(gomock.Any(), "user-123").
			Return(nil, assert.AnError)

		req := httptest.NewRequest("GET", "/api/v1/admin/user/user-123/sessions", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)

		resp, _ := f.app.Test(req)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
