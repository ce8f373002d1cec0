package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "mail-key", "CareLink <no-reply@carelink.app>")
	err := client.Send(context.Background(), "user@example.com", "Confirm your new email", "<p>123456</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer mail-key", gotAuth)
	assert.Equal(t, "CareLink <no-reply@carelink.app>", gotBody["from"])
	assert.Equal(t, []interface{}{"user@example.com"}, gotBody["to"])
	assert.Equal(t, "Confirm your new email", gotBody["subject"])
	assert.Equal(t, "<p>123456</p>", gotBody["html"])
}

func TestSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid recipient"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "mail-key", "no-reply@carelink.app")
	err := client.Send(context.Background(), "broken", "s", "<p>x</p>")
	assert.ErrorContains(t, err, "status 422")
}
