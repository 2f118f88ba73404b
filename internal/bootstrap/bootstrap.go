package bootstrap

import (
	"anxonews-server/internal/config"
	"anxonews-server/internal/observability"
	"context"
	"fmt"
	"time"

	"anxonews-server/internal/clients/mail"
	"anxonews-server/internal/clients/mailerlite"
	"anxonews-server/internal/notify"
	"anxonews-server/internal/ratelimit"
	subscribeHandler "anxonews-server/internal/subscribe/handler"
	subscribeProcessor "anxonews-server/internal/subscribe/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	Logger *observability.Logger

	SubscribeHandler subscribeHandler.Handler
	RateLimiter      *ratelimit.Service
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	mlClient := mailerlite.NewClient(cfg.MailerLite.APIKey, cfg.MailerLite.GroupID, logger)
	if !mlClient.IsEnabled() {
		logger.Warn(ctx, "MAILERLITE_API_KEY not configured, subscribe endpoint will answer 503")
	}

	var notifier *notify.Notifier
	if cfg.Notify.Enabled() {
		resendClient, err := mail.NewResendClient(cfg.Notify.ResendAPIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize resend client: %w", err)
		}
		notifier = notify.New(resendClient, cfg.Notify.SenderEmail, cfg.Notify.OwnerEmail, logger)
		logger.Info(ctx, "owner notifications enabled")
	}

	proc := subscribeProcessor.New(mlClient, notifier, logger)
	deps.SubscribeHandler = subscribeHandler.New(proc, logger)

	deps.RateLimiter = ratelimit.NewService(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowSecs)*time.Second,
		logger,
	)

	return deps, nil
}
