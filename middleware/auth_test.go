package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/Surabhi11/fantasy-cricket/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	user *models.User
}

func (s *stubAuthService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, input services.LoginInput) (*models.User, *models.Session, error) {
	return nil, nil, nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error { return nil }

func (s *stubAuthService) UserBySession(ctx context.Context, token string) (*models.User, error) {
	if s.user != nil && token == "valid-token" {
		return s.user, nil
	}
	return nil, services.ErrNotAuthenticated
}

func (s *stubAuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) { return 0, nil }

func captureUserHandler(got **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := UserFromContext(r.Context()); err == nil {
			*got = user
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateRejectsMissingCookie(t *testing.T) {
	var got *models.User
	handler := Authenticate(&stubAuthService{})(captureUserHandler(&got))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestAuthenticateOptionalPassesAnonymous(t *testing.T) {
	var got *models.User
	handler := AuthenticateOptional(&stubAuthService{})(captureUserHandler(&got))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got)
}

func TestAuthenticateOptionalAttachesUser(t *testing.T) {
	var got *models.User
	auth := &stubAuthService{user: &models.User{ID: 7, Username: "surabhi"}}
	handler := AuthenticateOptional(auth)(captureUserHandler(&got))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "valid-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.ID)
}

func TestAuthenticateOptionalIgnoresBadToken(t *testing.T) {
	var got *models.User
	auth := &stubAuthService{user: &models.User{ID: 7}}
	handler := AuthenticateOptional(auth)(captureUserHandler(&got))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got)
}
