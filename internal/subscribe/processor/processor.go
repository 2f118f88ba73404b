package processor

import (
	"anxonews-server/internal/observability"
	"anxonews-server/internal/validation"
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrNameTooShort     = errors.New("name is too short")
	ErrNameTooLong      = errors.New("name is too long")
	ErrNameInvalidChars = errors.New("name contains disallowed characters")
	ErrNotConfigured    = errors.New("subscription provider not configured")
)

// SubscribeRequest represents a request to subscribe an email to the
// newsletter. Name is optional; nil means the caller did not send one.
type SubscribeRequest struct {
	Email string
	Name  *string
}

type SubscribeProcessor struct {
	client   SubscriberClient
	notifier OwnerNotifier
	logger   *observability.Logger
}

func New(client SubscriberClient, notifier OwnerNotifier, logger *observability.Logger) SubscribeProcessor {
	return SubscribeProcessor{
		client:   client,
		notifier: notifier,
		logger:   logger,
	}
}

// Subscribe validates the request and registers the email with the
// newsletter provider. Validation failures surface as the Err* sentinels
// above; provider failures pass through from the client untouched so the
// handler can inspect their status and message.
func (p *SubscribeProcessor) Subscribe(ctx context.Context, req SubscribeRequest) error {
	if !validation.ValidateEmailStrict(req.Email) {
		return ErrInvalidEmail
	}

	name, err := validateName(req.Name)
	if err != nil {
		return err
	}

	if !p.client.IsEnabled() {
		return ErrNotConfigured
	}

	email := validation.NormalizeEmail(req.Email)
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_masked", Value: observability.MaskEmail(email)},
	)
	p.logger.Info(ctx, "subscribing email")

	if err := p.client.CreateSubscriber(ctx, email, name); err != nil {
		return err
	}

	if p.notifier != nil && p.notifier.Enabled() {
		go p.notifier.SubscriberCreated(ctx, email, name)
	}

	return nil
}

// validateName checks and sanitizes an optional name. A nil name is
// valid and yields the empty string.
func validateName(name *string) (string, error) {
	if name == nil {
		return "", nil
	}

	trimmed := strings.TrimSpace(*name)
	if utf8.RuneCountInString(trimmed) < validation.MinNameLength {
		return "", ErrNameTooShort
	}
	if utf8.RuneCountInString(trimmed) > validation.MaxNameLength {
		return "", ErrNameTooLong
	}

	sanitized := validation.SanitizeName(trimmed)
	if !validation.ValidName(sanitized) {
		return "", ErrNameInvalidChars
	}
	return sanitized, nil
}
