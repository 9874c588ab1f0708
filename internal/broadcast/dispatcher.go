package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/streamkit/donation-notifier/internal/chat"
	appErr "github.com/streamkit/donation-notifier/internal/errors"
	"github.com/streamkit/donation-notifier/internal/metrics"
	"github.com/streamkit/donation-notifier/internal/model"
)

// Dispatcher accepts broadcast messages for asynchronous delivery.
// Delivery is best effort: failures are logged and counted, never retried,
// and never surface to the caller.
type Dispatcher interface {
	Enqueue(msg model.BroadcastMessage) error
}

// PoolDispatcher drains an in-process queue with a fixed pool of workers so
// that slow chat-server calls never block the consumer goroutine.
type PoolDispatcher struct {
	broadcaster chat.Broadcaster
	queue       chan model.BroadcastMessage
	workers     int
	log         *slog.Logger
	wg          sync.WaitGroup
}

func NewPoolDispatcher(broadcaster chat.Broadcaster, workers, queueSize int, log *slog.Logger) *PoolDispatcher {
	if workers < 1 {
		workers = 1
	}
	return &PoolDispatcher{
		broadcaster: broadcaster,
		queue:       make(chan model.BroadcastMessage, queueSize),
		workers:     workers,
		log:         log,
	}
}

// Start launches the worker pool. Workers stop when the context is cancelled;
// messages still queued at that point are dropped.
func (d *PoolDispatcher) Start(ctx context.Context) {
	d.log.Info("Starting broadcast dispatcher", slog.Int("workers", d.workers))
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}
}

func (d *PoolDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		}
	}
}

func (d *PoolDispatcher) deliver(ctx context.Context, msg model.BroadcastMessage) {
	start := time.Now()
	err := d.broadcaster.Broadcast(ctx, msg)
	metrics.BroadcastDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		// Best effort only: a failed broadcast never affects message processing.
		metrics.BroadcastsSent.WithLabelValues(metrics.OutcomeFailed).Inc()
		d.log.Error("Chat broadcast failed",
			slog.String("msg", msg.Msg),
			slog.Any("error", err))
		return
	}

	metrics.BroadcastsSent.WithLabelValues(metrics.OutcomeOK).Inc()
	d.log.Info("Chat broadcast delivered", slog.String("msg", msg.Msg))
}

// Enqueue queues a message for delivery without blocking. A saturated queue
// drops the message and reports appErr.ErrQueueFull.
func (d *PoolDispatcher) Enqueue(msg model.BroadcastMessage) error {
	select {
	case d.queue <- msg:
		return nil
	default:
		metrics.BroadcastsSent.WithLabelValues(metrics.OutcomeDropped).Inc()
		return appErr.ErrQueueFull
	}
}

// Wait blocks until all workers have stopped. Call after cancelling the
// context passed to Start.
func (d *PoolDispatcher) Wait() {
	d.wg.Wait()
	d.log.Info("Broadcast dispatcher stopped")
}
