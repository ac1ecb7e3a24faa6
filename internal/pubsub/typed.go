package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Event[T] wraps a topic name and provides type-safe publishing.
type Event[T any] struct {
	topicName   string
	description string
}

var (
	eventsMu sync.RWMutex
	events   = map[string]string{}
)

// NewEvent creates a typed event and records it in the topic list. Events
// are declared at package level, so a duplicate name is a programming error.
func NewEvent[T any](name string, description string) Event[T] {
	eventsMu.Lock()
	defer eventsMu.Unlock()
	if _, dup := events[name]; dup {
		panic(fmt.Sprintf("pubsub: event %q declared twice", name))
	}
	events[name] = description
	return Event[T]{topicName: name, description: description}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Description returns the human readable purpose of the event.
func (e Event[T]) Description() string {
	return e.description
}

// Decode unmarshals the payload of msg.
func (e Event[T]) Decode(msg Message) (T, error) {
	var payload T
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decoding %s: %w", e.topicName, err)
	}
	return payload, nil
}

// Topic describes a declared event.
type Topic struct {
	Name        string
	Description string
}

// Topics lists all declared events sorted by name.
func Topics() []Topic {
	eventsMu.RLock()
	defer eventsMu.RUnlock()
	out := make([]Topic, 0, len(events))
	for name, desc := range events {
		out = append(out, Topic{Name: name, Description: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.Publish(ctx, Message{
		Topic:   event.Name(),
		Payload: data,
	})
}

// Subscribe registers a typed handler for event.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		payload, err := event.Decode(msg)
		if err != nil {
			return err
		}
		return handler(ctx, payload)
	})
}
