package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carelink-app/carelink-backend/internal/logging"
)

const sendTimeout = 10 * time.Second

// Client sends transactional email through the provider's HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	from    string
	http    *http.Client
}

func NewClient(baseURL, apiKey, from string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		http:    &http.Client{Timeout: sendTimeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email. The body is never logged; confirmation codes
// travel through it.
func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	logger := logging.NewLogger(ctx)

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.LogError("email_send", err)
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.LogWarnf("email_send", "provider returned status %d", resp.StatusCode)
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, body)
	}

	logger.LogInfo("email_send", "email accepted by provider", logging.Fields{
		"email":   to,
		"subject": subject,
	})
	return nil
}
