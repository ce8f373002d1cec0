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

	"github.com/carelink-app/carelink-backend/internal/feedback/domain"
)

type fakeStore struct {
	created []*domain.Feedback
}

func (f *fakeStore) Create(_ context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	f.created = append(f.created, fb)
	return fb, nil
}

func submit(t *testing.T, store Store, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(store).Routes(r)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/submit-feedback", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitFeedback(t *testing.T) {
	store := &fakeStore{}
	w := submit(t, store, gin.H{"userId": "u1", "rating": 4, "comment": "helpful guides"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, store.created, 1)
	assert.Equal(t, 4, store.created[0].Rating)
}

func TestSubmitFeedbackRatingBounds(t *testing.T) {
	store := &fakeStore{}
	for _, rating := range []int{0, 6, -1} {
		w := submit(t, store, gin.H{"userId": "u1", "rating": rating})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
	}
	assert.Empty(t, store.created)
}

func TestSubmitFeedbackMissingUser(t *testing.T) {
	w := submit(t, &fakeStore{}, gin.H{"rating": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
