package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import "context"

// SubscriberClient defines the upstream provider operations required by
// SubscribeProcessor
type SubscriberClient interface {
	CreateSubscriber(ctx context.Context, email, name string) error
	IsEnabled() bool
}

// OwnerNotifier defines the owner-notification operations required by
// SubscribeProcessor
type OwnerNotifier interface {
	SubscriberCreated(ctx context.Context, email, name string)
	Enabled() bool
}
