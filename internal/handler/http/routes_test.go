package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agrolab/backoffice/internal/logger"
	"github.com/agrolab/backoffice/internal/service"
	"github.com/agrolab/backoffice/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter builds the full chi router over mocked services.
func newTestRouter(t *testing.T, users service.UserService, stats service.StatsService) http.Handler {
	t.Helper()
	h := NewHandler(&service.Services{
		UserService:  users,
		StatsService: stats,
	}, logger.Nop())
	return h.Init()
}

// TestRoutes_PublicEndpointsSkipAuth verifies that the login route is
// reachable without an Authorization header.
func TestRoutes_PublicEndpointsSkipAuth(t *testing.T) {
	users := &mockUserService{
		loginFn: func(_ context.Context, _, _ string) (models.LoginResponse, error) {
			return models.LoginResponse{Token: "tok", Username: "alice"}, nil
		},
	}

	router := newTestRouter(t, users, &mockStatsService{})

	body := jsonBody(t, credentialsRequest{Username: "alice", Password: "pass123"})
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestRoutes_ProtectedEndpointsRequireAuth verifies that back-office routes
// reject unauthenticated requests before reaching the handler.
func TestRoutes_ProtectedEndpointsRequireAuth(t *testing.T) {
	router := newTestRouter(t, &mockUserService{}, &mockStatsService{})

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users"},
		{http.MethodGet, "/api/users/1"},
		{http.MethodPut, "/api/users/1"},
		{http.MethodDelete, "/api/users/1"},
		{http.MethodGet, "/api/users/check/alice"},
		{http.MethodPost, "/api/users/logout"},
		{http.MethodGet, "/api/statistics/visitors"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

// TestRoutes_AuthenticatedFlow drives a protected route end to end through
// the router with a token accepted by the mocked token parser.
func TestRoutes_AuthenticatedFlow(t *testing.T) {
	users := &mockUserService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{Username: "admin"}, nil
		},
		getAllUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{{ID: 1, Username: "alice"}}, nil
		},
	}

	router := newTestRouter(t, users, &mockStatsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer some.valid.token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
	// the trace middleware runs for every route
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestRoutes_UnknownPath(t *testing.T) {
	router := newTestRouter(t, &mockUserService{}, &mockStatsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/does-not-exist", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
