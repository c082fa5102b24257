package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "proofgate/pkg/domain"
)

func TestPublisher_SyncEmit(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)

	subject := id.SubjectID(uuid.New())
	err := p.Emit(context.Background(), Event{
		SubjectID:    subject,
		CredentialID: "vc_abc",
		Action:       ActionCredentialIssued,
		Decision:     "issued",
	})
	require.NoError(t, err)

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ActionCredentialIssued, events[0].Action)
	assert.Equal(t, subject, events[0].SubjectID)
	assert.False(t, events[0].Timestamp.IsZero(), "publisher must stamp missing timestamps")
}

func TestPublisher_AsyncEmitDrains(t *testing.T) {
	store := NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewPublisher(store, WithAsyncBuffer(16), WithPublisherLogger(logger))

	for range 10 {
		require.NoError(t, p.Emit(context.Background(), Event{Action: ActionCredentialRevoked}))
	}
	p.Close()

	assert.Len(t, store.Events(), 10)
}

func TestPublisher_AsyncBufferFullDropsEvent(t *testing.T) {
	// A blocked sink must not stall the hot path: emits beyond the buffer
	// return an error instead of blocking.
	block := make(chan struct{})
	store := &blockingStore{release: block}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewPublisher(store, WithAsyncBuffer(1), WithPublisherLogger(logger))

	// First event is consumed by the worker and blocks; second fills the buffer.
	require.NoError(t, p.Emit(context.Background(), Event{Action: "a"}))
	// Give the worker a moment to pick up the first event.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, p.Emit(context.Background(), Event{Action: "b"}))

	err := p.Emit(context.Background(), Event{Action: "c"})
	assert.Error(t, err, "emit past a full buffer should fail fast")

	close(block)
	p.Close()
}

type blockingStore struct {
	release chan struct{}
}

func (s *blockingStore) Append(_ context.Context, _ Event) error {
	<-s.release
	return nil
}
