package providers

import (
	"context"

	"github.com/eventflow/marketplace/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// booking lifecycle events. Publishing is the whole of this service's
// notification responsibility; delivery to end users happens elsewhere.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelBookingUpdates is the firehose channel for all booking
	// lifecycle events
	EventChannelBookingUpdates = "booking:updates"

	// eventChannelBookingPrefix is the prefix for per-booking channels
	eventChannelBookingPrefix = "booking:"

	// eventChannelVendorPrefix is the prefix for per-vendor channels
	eventChannelVendorPrefix = "vendor:"
)

// GetBookingChannel returns the channel name for a specific booking
func GetBookingChannel(bookingID string) string {
	return eventChannelBookingPrefix + bookingID
}

// GetVendorChannel returns the channel name for a specific vendor
func GetVendorChannel(vendorID string) string {
	return eventChannelVendorPrefix + vendorID
}
