// Package subscribeapi is the HTTP client used by the signup flow to
// reach the subscribe endpoint.
package subscribeapi

import (
	"anxonews-server/internal/flow"
	"anxonews-server/internal/observability"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client submits signups to the subscribe API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a new subscribe API client. The API key is optional
// and sent as a bearer credential when present.
func NewClient(baseURL, apiKey string, logger *observability.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type subscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Submit registers the email with the newsletter. A response the server
// answered with a message comes back as *flow.ServerError so the caller
// can show it verbatim; transport failures come back as plain errors.
func (c *Client) Submit(ctx context.Context, email, name string) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_masked", Value: observability.MaskEmail(email)},
	)

	payload, err := json.Marshal(subscribeRequest{Email: email, Name: name})
	if err != nil {
		return fmt.Errorf("failed to prepare subscribe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/subscribe", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create subscribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to reach subscribe API", err)
		return fmt.Errorf("failed to reach subscribe API: %w", err)
	}
	defer resp.Body.Close()

	var apiResp subscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		if resp.StatusCode >= 300 {
			return fmt.Errorf("subscribe API returned status %d", resp.StatusCode)
		}
		c.logger.Error(ctx, "failed to parse subscribe response", err)
		return fmt.Errorf("failed to parse subscribe response: %w", err)
	}

	if resp.StatusCode >= 300 || !apiResp.Success {
		message := apiResp.Error
		if message == "" {
			return fmt.Errorf("subscribe API returned status %d", resp.StatusCode)
		}
		return &flow.ServerError{Message: message}
	}

	c.logger.Info(ctx, "signup submitted")
	return nil
}
