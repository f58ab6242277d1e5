package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus(16)
	ctx := context.Background()

	received := make(chan *Envelope, 4)
	_, err := bus.Subscribe(ctx, Filter{Types: []string{"LoadChunkRequested"}}, func(_ context.Context, ev *Envelope) {
		received <- ev
	})
	require.NoError(t, err)

	// Событие с подходящим типом доставляется
	require.NoError(t, bus.Publish(ctx, &Envelope{ID: "1", EventType: "LoadChunkRequested"}))
	// Событие с другим типом фильтруется
	require.NoError(t, bus.Publish(ctx, &Envelope{ID: "2", EventType: "UnloadChunkRequested"}))
	require.NoError(t, bus.Publish(ctx, &Envelope{ID: "3", EventType: "LoadChunkRequested"}))

	var got []string
	for len(got) < 2 {
		select {
		case ev := <-received:
			got = append(got, ev.ID)
		case <-time.After(time.Second):
			t.Fatal("События не были доставлены вовремя")
		}
	}

	// Порядок доставки совпадает с порядком публикации
	assert.Equal(t, []string{"1", "3"}, got)

	stats := bus.Metrics()
	assert.Equal(t, uint64(3), stats.Published)
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewMemoryBus(4)
	ctx := context.Background()

	received := make(chan *Envelope, 4)
	sub, err := bus.Subscribe(ctx, Filter{}, func(_ context.Context, ev *Envelope) {
		received <- ev
	})
	require.NoError(t, err)

	sub.Unsubscribe()
	require.NoError(t, bus.Publish(ctx, &Envelope{ID: "after"}))

	select {
	case ev := <-received:
		t.Fatalf("Событие %s доставлено после отписки", ev.ID)
	case <-time.After(100 * time.Millisecond):
	}
}
