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

	accountsdomain "github.com/carelink-app/carelink-backend/internal/accounts/domain"
	"github.com/carelink-app/carelink-backend/internal/guides/domain"
)

type fakeMatcher struct {
	guides []domain.Guide
	err    error
}

func (f *fakeMatcher) MatchForUser(_ context.Context, _ string) ([]domain.Guide, error) {
	return f.guides, f.err
}

func setupRouter(m Matcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(m).Routes(r)
	return r
}

func postMatch(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/match-guides", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMatchGuidesSuccess(t *testing.T) {
	r := setupRouter(&fakeMatcher{guides: []domain.Guide{
		{ID: 1, Title: "Handling repeated questions", Tags: []string{"Communication"}},
	}})

	w := postMatch(t, r, gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Guides []domain.Guide `json:"guides"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Guides, 1)
	assert.Equal(t, "Handling repeated questions", resp.Guides[0].Title)
}

func TestMatchGuidesMissingUserID(t *testing.T) {
	r := setupRouter(&fakeMatcher{})
	w := postMatch(t, r, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchGuidesUnknownUser(t *testing.T) {
	r := setupRouter(&fakeMatcher{err: accountsdomain.ErrUserNotFound})
	w := postMatch(t, r, gin.H{"userId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
