package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menyesha/complaint-service/internal/events"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventComplaintCreated, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(events.EventComplaintCreated, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventComplaintCreated,
		SubjectID: "complaint-1",
	})
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "complaint-1", received[0].SubjectID)
}

func TestDispatcher_TypeIsolation(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var calls int
	dispatcher.Subscribe(events.EventUserStatusChanged, func(ctx context.Context, event events.Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventComplaintCreated})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestDispatcher_HandlerErrorsDoNotPropagate(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	dispatcher.Subscribe(events.EventComplaintStatusChanged, func(ctx context.Context, event events.Event) error {
		return errors.New("handler blew up")
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventComplaintStatusChanged})
	assert.NoError(t, err)
}
