package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow/marketplace/internal/adapters/events"
	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/providers"
	redisclient "github.com/eventflow/marketplace/internal/infrastructure/clients/redis"
)

// The subscription bookkeeping is all in-process; a client pointed at
// a dead address is enough to drive it, only delivery needs a broker.
func newTestBus(t *testing.T) providers.EventBus {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })
	return events.NewRedisEventBus(redisclient.NewClientWithRedis(client))
}

func assertClosed(t *testing.T, ch <-chan *entities.BookingEvent) {
	t.Helper()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber channel was not closed")
	}
}

func TestRedisEventBus_UnsubscribeClosesSubscribers(t *testing.T) {
	bus := newTestBus(t)
	defer bus.Close()

	ch1, err := bus.Subscribe(context.Background(), providers.EventChannelBookingUpdates)
	require.NoError(t, err)
	ch2, err := bus.Subscribe(context.Background(), providers.EventChannelBookingUpdates)
	require.NoError(t, err)

	require.NoError(t, bus.Unsubscribe(context.Background(), providers.EventChannelBookingUpdates))

	assertClosed(t, ch1)
	assertClosed(t, ch2)
}

func TestRedisEventBus_ContextCancelRemovesOneSubscriber(t *testing.T) {
	bus := newTestBus(t)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancelled, err := bus.Subscribe(ctx, providers.GetBookingChannel("b1"))
	require.NoError(t, err)
	kept, err := bus.Subscribe(context.Background(), providers.GetBookingChannel("b1"))
	require.NoError(t, err)

	cancel()
	assertClosed(t, cancelled)

	select {
	case <-kept:
		t.Fatal("unrelated subscriber was closed")
	default:
	}
}

func TestRedisEventBus_CloseClosesEverything(t *testing.T) {
	bus := newTestBus(t)

	ch1, err := bus.Subscribe(context.Background(), providers.EventChannelBookingUpdates)
	require.NoError(t, err)
	ch2, err := bus.Subscribe(context.Background(), providers.GetVendorChannel("v1"))
	require.NoError(t, err)

	require.NoError(t, bus.Close())

	assertClosed(t, ch1)
	assertClosed(t, ch2)
}

func TestRedisEventBus_PublishSurfacesBrokerErrors(t *testing.T) {
	bus := newTestBus(t)
	defer bus.Close()

	err := bus.Publish(context.Background(), providers.EventChannelBookingUpdates, &entities.BookingEvent{
		ID:        "evt-1",
		Type:      entities.BookingEventTransition,
		BookingID: "b1",
	})

	assert.Error(t, err)
}
