package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agrolab/backoffice/internal/service"
	"github.com/agrolab/backoffice/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withURLParam attaches a chi route parameter to the request context so
// handlers can be exercised without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ─────────────────────────────────────────────
// listUsers
// ─────────────────────────────────────────────

func TestListUsers_Success(t *testing.T) {
	users := &mockUserService{
		getAllUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{
				{ID: 1, Username: "alice", Email: "alice@example.com"},
				{ID: 2, Username: "bob"},
			}, nil
		},
	}

	h := newHandlerWithUsers(t, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Username)
	// password hash must never appear in responses
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestListUsers_Empty(t *testing.T) {
	users := &mockUserService{
		getAllUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{}, nil
		},
	}

	h := newHandlerWithUsers(t, users)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

// ─────────────────────────────────────────────
// createUser
// ─────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	users := &mockUserService{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			require.Equal(t, "carol", user.Username)
			require.Equal(t, "pass123", user.Password)
			user.ID = 7
			user.Password = ""
			return user, nil
		},
	}

	h := newHandlerWithUsers(t, users)
	body := `{"username":"carol","email":"carol@example.com","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.createUser(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "carol", got.Username)
}

func TestCreateUser_EmailTaken(t *testing.T) {
	users := &mockUserService{
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, service.ErrEmailTaken
		},
	}

	h := newHandlerWithUsers(t, users)
	body := `{"username":"carol","email":"taken@example.com","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.createUser(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrEmailTaken.Error())
}

// ─────────────────────────────────────────────
// getUser
// ─────────────────────────────────────────────

func TestGetUser_Success(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, id int64) (models.User, bool, error) {
			require.Equal(t, int64(42), id)
			return models.User{ID: 42, Username: "alice"}, true, nil
		},
	}

	h := newHandlerWithUsers(t, users)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/42", nil), "id", "42")
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(42), got.ID)
}

func TestGetUser_NotFound(t *testing.T) {
	users := &mockUserService{
		getUserByIDFn: func(_ context.Context, _ int64) (models.User, bool, error) {
			return models.User{}, false, nil
		},
	}

	h := newHandlerWithUsers(t, users)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/404", nil), "id", "404")
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUser_BadID(t *testing.T) {
	h := newHandlerWithUsers(t, &mockUserService{})
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/abc", nil), "id", "abc")
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// updateUser
// ─────────────────────────────────────────────

// TestUpdateUser_PathIDWins verifies that the {id} route parameter overrides
// any id carried in the request body.
func TestUpdateUser_PathIDWins(t *testing.T) {
	users := &mockUserService{
		updateUserFn: func(_ context.Context, user models.User) (models.User, error) {
			require.Equal(t, int64(5), user.ID)
			return user, nil
		},
	}

	h := newHandlerWithUsers(t, users)
	body := `{"id":999,"username":"alice","email":"alice@example.com"}`
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/users/5", strings.NewReader(body)), "id", "5")
	rec := httptest.NewRecorder()

	h.updateUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateUser_UsernameConflict(t *testing.T) {
	users := &mockUserService{
		updateUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, service.ErrUsernameTaken
		},
	}

	h := newHandlerWithUsers(t, users)
	body := `{"username":"taken"}`
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/users/5", strings.NewReader(body)), "id", "5")
	rec := httptest.NewRecorder()

	h.updateUser(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateUser_NotFound(t *testing.T) {
	users := &mockUserService{
		updateUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, service.ErrUserNotFound
		},
	}

	h := newHandlerWithUsers(t, users)
	body := `{"username":"ghost"}`
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/users/5", strings.NewReader(body)), "id", "5")
	rec := httptest.NewRecorder()

	h.updateUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// deleteUser
// ─────────────────────────────────────────────

func TestDeleteUser_Success(t *testing.T) {
	var deleted int64
	users := &mockUserService{
		deleteUserFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}

	h := newHandlerWithUsers(t, users)
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/9", nil), "id", "9")
	rec := httptest.NewRecorder()

	h.deleteUser(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(9), deleted)
}

func TestDeleteUser_NotFound(t *testing.T) {
	users := &mockUserService{
		deleteUserFn: func(_ context.Context, _ int64) error {
			return service.ErrUserNotFound
		},
	}

	h := newHandlerWithUsers(t, users)
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/9", nil), "id", "9")
	rec := httptest.NewRecorder()

	h.deleteUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// checkUsername
// ─────────────────────────────────────────────

func TestCheckUsername_Exists(t *testing.T) {
	users := &mockUserService{
		findByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			require.Equal(t, "alice", username)
			return models.User{ID: 1, Username: "alice"}, nil
		},
	}

	h := newHandlerWithUsers(t, users)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/check/alice", nil), "username", "alice")
	rec := httptest.NewRecorder()

	h.checkUsername(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())
}

func TestCheckUsername_Free(t *testing.T) {
	users := &mockUserService{
		findByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, service.ErrUserNotFound
		},
	}

	h := newHandlerWithUsers(t, users)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/check/ghost", nil), "username", "ghost")
	rec := httptest.NewRecorder()

	h.checkUsername(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":false}`, rec.Body.String())
}
