package overview

import "context"

// NotificationsClient defines the minimal interface needed from the host
// application's notifications system.
type NotificationsClient interface {
	PublishOverviewEvent(ctx context.Context, event StateEvent) error
}

// NotificationsHook forwards state events to an external notifications client.
type NotificationsHook struct {
	Client NotificationsClient
}

// StateChanged publishes events to the configured notifications client.
func (h *NotificationsHook) StateChanged(ctx context.Context, event StateEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.PublishOverviewEvent(ctx, event)
}
