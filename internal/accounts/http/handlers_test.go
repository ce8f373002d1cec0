package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink-app/carelink-backend/internal/accounts/domain"
	"github.com/carelink-app/carelink-backend/internal/auth"
)

type fakeAccounts struct {
	registered *domain.User
	registerEr error
	loginRes   *domain.LoginResult
	loginErr   error
	deleted    []string
	deleteErr  error
}

func (f *fakeAccounts) Register(_ context.Context, _ *domain.RegisterRequest) (*domain.User, error) {
	return f.registered, f.registerEr
}

func (f *fakeAccounts) Login(_ context.Context, _, _ string) (*domain.LoginResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAccounts) ChangePassword(_ context.Context, _, _, _ string) error { return nil }

func (f *fakeAccounts) DeleteAccount(_ context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, userID)
	return nil
}

func (f *fakeAccounts) GetProfile(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeAccounts) UpdateProfile(_ context.Context, _ string, _ *domain.UpdateProfileRequest) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func setupRouter(accounts Accounts, authedUID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	passthrough := func(c *gin.Context) { c.Next() }
	authed := func(c *gin.Context) {
		if authedUID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}
		c.Set(auth.CtxUserID, authedUID)
		c.Next()
	}
	New(accounts).Routes(r, passthrough, authed)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_Created(t *testing.T) {
	fake := &fakeAccounts{registered: &domain.User{
		ID: "uid-1", Name: "Alice", Email: "alice@example.com",
		Relation: "daughter", FamilyID: "fam-1",
	}}
	r := setupRouter(fake, "")

	w := doJSON(t, r, http.MethodPost, "/register", map[string]interface{}{
		"name": "Alice", "email": "alice@example.com", "password": "pw",
		"relationToDementiaPerson": "daughter", "termsAccepted": true,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "uid-1", resp["id"])
	assert.Equal(t, "fam-1", resp["familyId"])
	assert.Equal(t, "daughter", resp["relationToDementiaPerson"])
}

func TestRegisterHandler_Conflict(t *testing.T) {
	fake := &fakeAccounts{registerEr: domain.ErrEmailTaken}
	r := setupRouter(fake, "")

	w := doJSON(t, r, http.MethodPost, "/register", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginHandler_GenericUnauthorizedBody(t *testing.T) {
	fake := &fakeAccounts{loginErr: auth.ErrInvalidCredentials}
	r := setupRouter(fake, "")

	wrongPw := doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	noUser := doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email": "ghost@example.com", "password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, noUser.Code)
	assert.JSONEq(t, wrongPw.Body.String(), noUser.Body.String())
}

func TestLoginHandler_MissingFields(t *testing.T) {
	r := setupRouter(&fakeAccounts{}, "")
	w := doJSON(t, r, http.MethodPost, "/login", map[string]string{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAccount_SubjectMustMatchPath(t *testing.T) {
	fake := &fakeAccounts{}
	r := setupRouter(fake, "uid-1")

	mismatch := doJSON(t, r, http.MethodDelete, "/user/uid-2/delete-account", nil)
	assert.Equal(t, http.StatusForbidden, mismatch.Code)
	assert.Empty(t, fake.deleted)

	match := doJSON(t, r, http.MethodDelete, "/user/uid-1/delete-account", nil)
	assert.Equal(t, http.StatusOK, match.Code)
	assert.Equal(t, []string{"uid-1"}, fake.deleted)
}

func TestDeleteAccount_RequiresToken(t *testing.T) {
	r := setupRouter(&fakeAccounts{}, "")
	w := doJSON(t, r, http.MethodDelete, "/user/uid-1/delete-account", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
