package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAcknowledger records what the consumer did with a delivery.
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func encodedEvent(t *testing.T, eventType string, payload any) []byte {
	t.Helper()
	ev, err := NewEvent(eventType, payload)
	require.NoError(t, err)
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	return body
}

func TestEventRoundTrip(t *testing.T) {
	body := encodedEvent(t, "place.created", map[string]any{"place_id": "p-1"})

	ev, err := DecodeEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "place.created", ev.Type)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.OccurredAt.IsZero())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "p-1", payload["place_id"])
}

func TestDecodeEventRejectsMalformed(t *testing.T) {
	for _, body := range []string{"", "not json", `{"type":"x"}`, `{"id":"1"}`} {
		_, err := DecodeEvent([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedEvent, "body %q", body)
	}
}

func TestHandleDelivery(t *testing.T) {
	ctx := context.Background()
	ok := func(context.Context, Event) error { return nil }
	failing := func(context.Context, Event) error { return errors.New("disk full") }

	tests := []struct {
		name        string
		body        []byte
		redelivered bool
		handler     func(context.Context, Event) error
		wantAck     bool
		wantRequeue bool
	}{
		{"success is acked", encodedEvent(t, "user.created", nil), false, ok, true, false},
		{"malformed is dropped", []byte("garbage"), false, ok, false, false},
		{"failure is requeued once", encodedEvent(t, "user.created", nil), false, failing, false, true},
		{"redelivered failure is dropped", encodedEvent(t, "user.created", nil), true, failing, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAcknowledger{}
			handleDelivery(ctx, amqp.Delivery{Acknowledger: ack, Body: tt.body, Redelivered: tt.redelivered}, tt.handler)
			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, !tt.wantAck, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
		})
	}
}
