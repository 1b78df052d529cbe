// Package events publishes domain events to redis pub/sub, or to the log
// when no broker is configured.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Envelope is the wire form of a published event.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into target.
func (e *Envelope) Decode(target any) error {
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return fmt.Errorf("decoding %s payload: %w", e.Type, err)
	}

	return nil
}

func newEnvelope(event ports.Event, now time.Time) (*Envelope, error) {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", event.EventType(), err)
	}

	return &Envelope{
		ID:         uuid.NewString(),
		Type:       event.EventType(),
		OccurredAt: now.UTC(),
		Payload:    payload,
	}, nil
}
