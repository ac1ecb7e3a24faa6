package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Text string `json:"text"`
}

var testGreeting = NewEvent[greeting]("test.greeting", "Greeting used by the bus tests")

func TestWatermillBridge_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridge()
	defer bridge.Close()

	got := make(chan Message, 1)
	require.NoError(t, bridge.Subscribe(ctx, "catalog.test", func(ctx context.Context, msg Message) error {
		got <- msg
		return nil
	}))

	require.NoError(t, bridge.Publish(ctx, Message{
		Topic:     "catalog.test",
		SessionID: "s-1",
		Payload:   []byte(`{"ok":true}`),
		Metadata:  map[string]string{"request_id": "req-1"},
	}))

	select {
	case msg := <-got:
		assert.Equal(t, "catalog.test", msg.Topic)
		assert.Equal(t, "s-1", msg.SessionID)
		assert.JSONEq(t, `{"ok":true}`, string(msg.Payload))
		assert.Equal(t, "req-1", msg.Metadata["request_id"])
		assert.NotContains(t, msg.Metadata, metaKeyTopic)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestTypedEvent_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer, shutdown, err := SetupTracing(ctx, DefaultTracingConfig())
	require.NoError(t, err)
	defer shutdown(ctx)

	bridge := NewWatermillBridge(WithTracer(tracer))
	defer bridge.Close()

	got := make(chan greeting, 1)
	require.NoError(t, Subscribe(ctx, bridge, testGreeting, func(ctx context.Context, g greeting) error {
		got <- g
		return nil
	}))
	require.NoError(t, Publish(ctx, bridge, testGreeting, greeting{Text: "hello"}))

	select {
	case g := <-got:
		assert.Equal(t, "hello", g.Text)
	case <-time.After(time.Second):
		t.Fatal("typed message not delivered")
	}
}

func TestTopics_ListsDeclaredEvents(t *testing.T) {
	var found bool
	for _, topic := range Topics() {
		if topic.Name == testGreeting.Name() {
			found = true
			assert.Equal(t, "Greeting used by the bus tests", topic.Description)
		}
	}
	assert.True(t, found)
	assert.Panics(t, func() { NewEvent[greeting]("test.greeting", "again") })
}

func TestEvent_DecodeRejectsGarbage(t *testing.T) {
	_, err := testGreeting.Decode(Message{Payload: []byte("not json")})
	assert.Error(t, err)
}
