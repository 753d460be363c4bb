package events

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"slotwise/backend/internal/domain"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testAppointment() domain.Appointment {
	return domain.Appointment{
		ID:           uuid.MustParse("00000000-0000-0000-0000-000000000a01"),
		TenantID:     "t1",
		ServiceID:    uuid.MustParse("00000000-0000-0000-0000-000000000b01"),
		CustomerName: "Ana",
		StartTime:    time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		Status:       domain.AppointmentStatusBooked,
		Service:      &domain.Service{DurationMinutes: 45},
	}
}

func TestNewAppointmentEvent(t *testing.T) {
	at := time.Date(2026, 1, 4, 8, 0, 0, 0, time.UTC)
	evt, err := NewAppointmentEvent(TypeAppointmentBooked, testAppointment(), at)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, evt.ID)
	assert.Equal(t, TypeAppointmentBooked, evt.Type)
	assert.Equal(t, "booked", evt.Payload.Status)
	assert.Equal(t, time.Date(2026, 1, 5, 10, 45, 0, 0, time.UTC), evt.Payload.EndTime)
	assert.Equal(t, at, evt.Payload.OccurredAt)
}

func TestKafkaPublisher_MessageShape(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, prefix: "slotwise."}

	evt, err := NewAppointmentEvent(TypeAppointmentBooked, testAppointment(), time.Now())
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "slotwise.appointment.booked.v1", msg.Topic)
	assert.Equal(t, evt.Payload.AppointmentID.String(), string(msg.Key))
	assert.Equal(t, evt.ID.String(), headerValue(msg.Headers, "event_id"))
	assert.Equal(t, TypeAppointmentBooked, headerValue(msg.Headers, "event_type"))

	var payload AppointmentPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "t1", payload.TenantID)
	assert.Equal(t, "Ana", payload.CustomerName)
}

func TestKafkaPublisher_InjectsTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}
	evt, err := NewAppointmentEvent(TypeAppointmentCancelled, testAppointment(), time.Now())
	require.NoError(t, err)
	require.NoError(t, p.Publish(ctx, evt))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", headerValue(w.msgs[0].Headers, "traceparent"))
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}}
	evt, err := NewAppointmentEvent(TypeAppointmentRescheduled, testAppointment(), time.Now())
	require.NoError(t, err)

	err = p.Publish(context.Background(), evt)
	assert.ErrorIs(t, err, boom)
}

func TestNewKafkaPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{" ", ""}})
	assert.Error(t, err)
}

func TestKafkaIntegration_Publish(t *testing.T) {
	raw := strings.TrimSpace(os.Getenv("SLOTWISE_TEST_KAFKA_BROKERS"))
	if raw == "" {
		t.Skip("SLOTWISE_TEST_KAFKA_BROKERS not set")
	}

	p, err := NewKafkaPublisher(KafkaConfig{Brokers: strings.Split(raw, ","), TopicPrefix: "slotwise-test."})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	evt, err := NewAppointmentEvent(TypeAppointmentBooked, testAppointment(), time.Now())
	require.NoError(t, err)
	require.NoError(t, p.Publish(ctx, evt))
}
