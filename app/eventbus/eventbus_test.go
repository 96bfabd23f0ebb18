package eventbus

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
)

func TestEventBus_PublishRoutesByMetadata(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus, err := NewEventBus(ctx, "", observability.NopLogger)
	require.NoError(t, err)
	defer bus.Close()

	msgs, err := bus.Subscribe(ctx, "chat.reply.requested.v1")
	require.NoError(t, err)

	m := message.NewMessage(watermill.NewUUID(), []byte(`{"text":"hi"}`))
	m.Metadata.Set(handlerwrapper.MetadataTopic, "chat.reply.requested.v1")
	published := make(chan error, 1)
	go func() { published <- bus.Publish("", m) }()

	select {
	case got := <-msgs:
		assert.Equal(t, m.UUID, got.UUID)
		assert.JSONEq(t, `{"text":"hi"}`, string(got.Payload))
		got.Ack()
	case <-ctx.Done():
		t.Fatal("message was not delivered")
	}
	require.NoError(t, <-published)
}

func TestEventBus_InProcessKeepsPublishOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bus := NewInProcess(watermill.NopLogger{}, observability.NopLogger)
	defer bus.Close()

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: time.Second}, watermill.NopLogger{})
	require.NoError(t, err)

	const total = 50
	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan struct{})
	router.AddNoPublisherHandler("order", "chat.message.received.v1", bus, func(msg *message.Message) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, string(msg.Payload))
		if len(got) == total {
			close(done)
		}
		return nil
	})

	go func() { _ = router.Run(ctx) }()
	defer router.Close()
	<-router.Running()

	want := make([]string, total)
	for i := range want {
		want[i] = strconv.Itoa(i)
		require.NoError(t, bus.Publish("chat.message.received.v1", message.NewMessage(watermill.NewUUID(), []byte(want[i]))))
	}

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("not every message was delivered")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, got)
}

func TestEventBus_PublishWithoutTopic(t *testing.T) {
	bus := NewInProcess(watermill.NopLogger{}, observability.NopLogger)
	defer bus.Close()

	m := message.NewMessage(watermill.NewUUID(), []byte(`{}`))
	assert.Error(t, bus.Publish("", m))
}
