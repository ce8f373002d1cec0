package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const identityToolkitBase = "https://identitytoolkit.googleapis.com"

// ErrInvalidCredentials covers every credential failure: unknown email, wrong
// password, disabled account. Callers must not distinguish between them so
// the login endpoint cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordClient checks email/password pairs against the identity service's
// own credential store via the Identity Toolkit REST API. The Admin SDK has
// no password verification call, and the facade never keeps a duplicate hash
// to compare against.
type PasswordClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewPasswordClient(apiKey string) *PasswordClient {
	return &PasswordClient{
		baseURL: identityToolkitBase,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewPasswordClientWithBaseURL is used by tests to point at a stub server.
func NewPasswordClientWithBaseURL(baseURL, apiKey string) *PasswordClient {
	c := NewPasswordClient(apiKey)
	c.baseURL = baseURL
	return c
}

// SignInResult carries the identity service tokens returned on a successful
// password check. They are handed back to the mobile client as-is.
type SignInResult struct {
	UID          string
	IDToken      string
	RefreshToken string
}

// SignInWithPassword verifies the pair and returns the issued tokens.
// Returns ErrInvalidCredentials on any credential failure.
func (c *PasswordClient) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal sign-in request: %w", err)
	}

	reqURL := c.baseURL + "/v1/accounts:signInWithPassword?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		// EMAIL_NOT_FOUND, INVALID_PASSWORD, INVALID_LOGIN_CREDENTIALS,
		// USER_DISABLED all collapse into the same error.
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	var out struct {
		LocalID      string `json:"localId"`
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}
	if out.LocalID == "" {
		return nil, ErrInvalidCredentials
	}

	return &SignInResult{
		UID:          out.LocalID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
	}, nil
}
