package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/party-booking-backend/internal/auth"
	"github.com/nekogravitycat/party-booking-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	users map[string]*user.User
}

func (s *stubUsers) Login(ctx context.Context, email, password string) (*user.User, error) {
	return nil, user.ErrInvalidCredentials
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *stubUsers) EnsureAdmin(ctx context.Context, email, password, displayName string) (*user.User, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	users := &stubUsers{users: map[string]*user.User{
		"admin": {ID: "admin", IsActive: true, IsSystemAdmin: true},
		"staff": {ID: "staff", IsActive: true},
	}}
	return NewRouter(Config{UserService: users, JWTManager: jwtManager}), jwtManager
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_Propagated(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestAdminRoutes_RequireSystemAdmin(t *testing.T) {
	r, jwtManager := newTestRouter(t)

	staffToken, err := jwtManager.GenerateAccessToken("staff", "staff@example.com")
	require.NoError(t, err)
	ghostToken, err := jwtManager.GenerateAccessToken("ghost", "ghost@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"unknown user", ghostToken, http.StatusUnauthorized},
		{"not admin", staffToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/maintenance-blocks", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
