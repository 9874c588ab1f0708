package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/streamkit/donation-notifier/internal/errors"
	"github.com/streamkit/donation-notifier/internal/model"
)

// fakeBroadcaster records delivered messages and optionally fails.
type fakeBroadcaster struct {
	mu        sync.Mutex
	delivered []model.BroadcastMessage
	err       error
	done      chan struct{}
}

func newFakeBroadcaster(err error) *fakeBroadcaster {
	return &fakeBroadcaster{err: err, done: make(chan struct{}, 16)}
}

func (f *fakeBroadcaster) Broadcast(_ context.Context, msg model.BroadcastMessage) error {
	f.mu.Lock()
	f.delivered = append(f.delivered, msg)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.delivered)
}

func waitFor(t *testing.T, ch chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for deliveries")
		}
	}
}

func TestDispatcher_DeliversQueuedMessages(t *testing.T) {
	fb := newFakeBroadcaster(nil)
	d := NewPoolDispatcher(fb, 2, 8, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	require.NoError(t, d.Enqueue(model.BroadcastMessage{Msg: "first"}))
	require.NoError(t, d.Enqueue(model.BroadcastMessage{Msg: "second"}))

	waitFor(t, fb.done, 2)
	cancel()
	d.Wait()

	assert.Equal(t, 2, fb.count())
}

func TestDispatcher_DeliveryFailureIsSwallowed(t *testing.T) {
	fb := newFakeBroadcaster(errors.New("chat server down"))
	d := NewPoolDispatcher(fb, 1, 8, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	// Enqueue never surfaces delivery errors.
	require.NoError(t, d.Enqueue(model.BroadcastMessage{Msg: "doomed"}))

	waitFor(t, fb.done, 1)
	cancel()
	d.Wait()
}

func TestDispatcher_FullQueueDropsMessage(t *testing.T) {
	// No workers running, so the queue fills up.
	d := NewPoolDispatcher(newFakeBroadcaster(nil), 1, 1, slog.Default())

	require.NoError(t, d.Enqueue(model.BroadcastMessage{Msg: "fits"}))
	err := d.Enqueue(model.BroadcastMessage{Msg: "dropped"})
	assert.ErrorIs(t, err, appErr.ErrQueueFull)
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	d := NewPoolDispatcher(newFakeBroadcaster(nil), 3, 8, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	finished := make(chan struct{})
	go func() {
		d.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop after context cancel")
	}
}
