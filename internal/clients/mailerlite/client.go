package mailerlite

import (
	"anxonews-server/internal/observability"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const subscribersURL = "https://connect.mailerlite.com/api/subscribers"

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrUpstream          = errors.New("mailerlite request failed")
)

// Subscriber is the payload sent to the MailerLite subscribers endpoint.
type Subscriber struct {
	Email  string   `json:"email"`
	Groups []string `json:"groups,omitempty"`
	Fields *Fields  `json:"fields,omitempty"`
}

// Fields holds optional subscriber attributes.
type Fields struct {
	Name string `json:"name"`
}

// apiResponse is the subset of the MailerLite response we inspect.
type apiResponse struct {
	Message string `json:"message,omitempty"`
}

// UpstreamError preserves the provider's status and message for
// server-side logging and the debug field of the API response.
type UpstreamError struct {
	StatusCode int
	Message    string
	Sentinel   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("mailerlite: status %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Sentinel
}

// Client handles subscriber creation against the MailerLite API
type Client struct {
	apiKey     string
	groupID    string
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a new MailerLite client. The group ID is optional;
// when set, created subscribers are attached to that group.
func NewClient(apiKey, groupID string, logger *observability.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		groupID: groupID,
		baseURL: subscribersURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// WithBaseURL overrides the API endpoint. Used in tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// IsEnabled returns true if the client has an API key configured
func (c *Client) IsEnabled() bool {
	return c.apiKey != ""
}

// CreateSubscriber registers an email with the newsletter. The email must
// already be normalized; name is optional. A duplicate registration is
// reported as ErrAlreadySubscribed, any other provider failure as an
// UpstreamError wrapping ErrUpstream.
func (c *Client) CreateSubscriber(ctx context.Context, email, name string) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_masked", Value: observability.MaskEmail(email)},
	)

	subscriber := Subscriber{Email: email}
	if c.groupID != "" {
		subscriber.Groups = []string{c.groupID}
	}
	if name != "" {
		subscriber.Fields = &Fields{Name: name}
	}

	jsonPayload, err := json.Marshal(subscriber)
	if err != nil {
		c.logger.Error(ctx, "failed to marshal subscriber payload", err)
		return fmt.Errorf("failed to prepare subscriber request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		c.logger.Error(ctx, "failed to create subscriber request", err)
		return fmt.Errorf("failed to create subscriber request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call mailerlite API", err)
		return fmt.Errorf("failed to reach mailerlite: %w", err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil && resp.StatusCode < 300 {
		c.logger.Error(ctx, "failed to parse mailerlite response", err)
		return fmt.Errorf("failed to parse mailerlite response: %w", err)
	}

	if resp.StatusCode >= 300 {
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "upstream_status", Value: resp.StatusCode},
			observability.Field{Key: "upstream_message", Value: apiResp.Message},
		)
		c.logger.Error(ctx, "mailerlite API error", ErrUpstream)

		sentinel := ErrUpstream
		if resp.StatusCode == http.StatusUnprocessableEntity ||
			resp.StatusCode == http.StatusConflict ||
			strings.Contains(apiResp.Message, "already exists") {
			sentinel = ErrAlreadySubscribed
		}
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    apiResp.Message,
			Sentinel:   sentinel,
		}
	}

	c.logger.Info(ctx, "subscriber created")
	return nil
}
