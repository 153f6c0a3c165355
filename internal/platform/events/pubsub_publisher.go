// Package events publishes store lifecycle events to Pub/Sub for downstream
// consumers such as search indexing and vendor notifications.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/pubsub"
)

// PubSubPublisher publishes domain events to a Pub/Sub topic. Each message
// carries the event name as an attribute so subscribers can filter without
// decoding the payload.
type PubSubPublisher struct {
	topic   *pubsub.Topic
	clock   func() time.Time
	marshal func(any) ([]byte, error)
}

// NewPubSubPublisher constructs a Pub/Sub backed event publisher.
func NewPubSubPublisher(topic *pubsub.Topic) (*PubSubPublisher, error) {
	if topic == nil {
		return nil, errors.New("pubsub event publisher: topic is required")
	}
	return &PubSubPublisher{
		topic:   topic,
		clock:   time.Now,
		marshal: json.Marshal,
	}, nil
}

// Publish enqueues one event message on the configured topic and waits for
// the server-assigned id.
func (p *PubSubPublisher) Publish(ctx context.Context, event string, payload map[string]any) error {
	if p == nil || p.topic == nil {
		return errors.New("pubsub event publisher: not initialised")
	}
	event = strings.TrimSpace(event)
	if event == "" {
		return errors.New("pubsub event publisher: event name is required")
	}

	envelope := map[string]any{
		"event":       event,
		"occurred_at": p.clock().UTC().Format(time.RFC3339Nano),
		"payload":     payload,
	}
	data, err := p.marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event, err)
	}

	attrs := map[string]string{"event": event}
	if storeID, ok := payload["store_id"].(string); ok && storeID != "" {
		attrs["storeId"] = storeID
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish event %s: %w", event, err)
	}
	return nil
}
