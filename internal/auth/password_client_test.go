package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInWithPassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.RawQuery, "key=test-key")

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, true, body["returnSecureToken"])

		_ = json.NewEncoder(w).Encode(map[string]string{
			"localId":      "uid-1",
			"idToken":      "id-token",
			"refreshToken": "refresh-token",
		})
	}))
	defer srv.Close()

	c := NewPasswordClientWithBaseURL(srv.URL, "test-key")
	res, err := c.SignInWithPassword(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", res.UID)
	assert.Equal(t, "id-token", res.IDToken)
	assert.Equal(t, "refresh-token", res.RefreshToken)
}

func TestSignInWithPassword_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	for _, upstream := range []string{"EMAIL_NOT_FOUND", "INVALID_PASSWORD"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"message": upstream},
			})
		}))

		c := NewPasswordClientWithBaseURL(srv.URL, "k")
		_, err := c.SignInWithPassword(context.Background(), "x@example.com", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "upstream=%s", upstream)
		srv.Close()
	}
}

func TestSignInWithPassword_ServerErrorIsNotCredentialError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewPasswordClientWithBaseURL(srv.URL, "k")
	_, err := c.SignInWithPassword(context.Background(), "x@example.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
