package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"approval-workflow/internal/entities"

	"go.uber.org/zap"
)

// Config tunes the asynchronous dispatcher.
type Config struct {
	QueueSize   int
	Workers     int
	MaxRetries  int
	RetryDelay  time.Duration
	SendTimeout time.Duration
}

// DefaultConfig returns a standard dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		QueueSize:   256,
		Workers:     2,
		MaxRetries:  0,
		RetryDelay:  2 * time.Second,
		SendTimeout: 10 * time.Second,
	}
}

// AsyncDispatcher queues events on a bounded channel consumed by a pool of workers.
// Enqueueing never blocks: when the queue is full the event is dropped and logged.
type AsyncDispatcher struct {
	log      *zap.SugaredLogger
	sender   Sender
	renderer *Renderer
	cfg      Config

	queue chan Event
	stop  chan struct{}
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewAsyncDispatcher starts cfg.Workers workers and returns the dispatcher.
func NewAsyncDispatcher(log *zap.SugaredLogger, sender Sender, renderer *Renderer, cfg Config) *AsyncDispatcher {
	def := DefaultConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	d := &AsyncDispatcher{
		log:      log.Named("notify.worker"),
		sender:   sender,
		renderer: renderer,
		cfg:      cfg,
		queue:    make(chan Event, cfg.QueueSize),
		stop:     make(chan struct{}),
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
	return d
}

// NotifyCreated queues a "request created" email to the approver.
func (d *AsyncDispatcher) NotifyCreated(snap entities.RequestSnapshot) {
	d.enqueue(Event{Kind: KindRequestCreated, Snapshot: snap})
}

// NotifyStatusChanged queues a "status updated" email to the requester.
func (d *AsyncDispatcher) NotifyStatusChanged(snap entities.RequestSnapshot, actor entities.User, comments *string) {
	d.enqueue(Event{Kind: KindStatusChanged, Snapshot: snap, Actor: &actor, Comments: comments})
}

func (d *AsyncDispatcher) enqueue(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		notificationEvents.WithLabelValues(string(ev.Kind), resultDropped).Inc()
		d.log.Warnw("dispatcher closed, notification dropped", "kind", ev.Kind, "request_id", ev.Snapshot.Request.ID)
		return
	}

	select {
	case d.queue <- ev:
		notificationEvents.WithLabelValues(string(ev.Kind), resultEnqueued).Inc()
		notificationQueueDepth.Set(float64(len(d.queue)))
	default:
		notificationEvents.WithLabelValues(string(ev.Kind), resultDropped).Inc()
		d.log.Errorw("notification queue full, event dropped",
			"kind", ev.Kind,
			"request_id", ev.Snapshot.Request.ID,
			"queue_size", d.cfg.QueueSize,
		)
	}
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()
	for ev := range d.queue {
		notificationQueueDepth.Set(float64(len(d.queue)))
		d.handle(ev)
	}
}

func (d *AsyncDispatcher) handle(ev Event) {
	kind := string(ev.Kind)
	requestID := ev.Snapshot.Request.ID

	defer func() {
		if r := recover(); r != nil {
			notificationEvents.WithLabelValues(kind, resultFailed).Inc()
			d.log.Errorw("notification handler panicked", "kind", kind, "request_id", requestID, "panic", r)
		}
	}()

	msg, err := d.renderer.Render(ev)
	if errors.Is(err, ErrNoRecipient) {
		notificationEvents.WithLabelValues(kind, resultSkipped).Inc()
		d.log.Warnw("notification skipped, recipient has no email", "kind", kind, "request_id", requestID)
		return
	}
	if err != nil {
		notificationEvents.WithLabelValues(kind, resultFailed).Inc()
		d.log.Errorw("failed to render notification", "error", err, "kind", kind, "request_id", requestID)
		return
	}

	for attempt := 1; ; attempt++ {
		err := d.send(msg)
		if err == nil {
			notificationEvents.WithLabelValues(kind, resultSent).Inc()
			d.log.Infow("notification sent", "kind", kind, "request_id", requestID, "recipient", msg.To)
			return
		}
		if attempt > d.cfg.MaxRetries {
			notificationEvents.WithLabelValues(kind, resultFailed).Inc()
			d.log.Errorw("failed to send notification",
				"error", err,
				"kind", kind,
				"request_id", requestID,
				"recipient", msg.To,
				"attempts", attempt,
			)
			return
		}

		d.log.Warnw("notification send failed, retrying",
			"error", err, "request_id", requestID, "recipient", msg.To, "attempt", attempt,
		)
		select {
		case <-time.After(d.cfg.RetryDelay):
		case <-d.stop:
			notificationEvents.WithLabelValues(kind, resultFailed).Inc()
			d.log.Errorw("dispatcher stopped before retry", "request_id", requestID, "recipient", msg.To)
			return
		}
	}
}

func (d *AsyncDispatcher) send(msg Message) error {
	ctx := context.Background()
	if d.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.SendTimeout)
		defer cancel()
	}
	return d.sender.Send(ctx, msg)
}

// Close stops accepting events and waits for queued ones to drain.
// When ctx expires first, pending retries are abandoned and ctx.Err() is returned.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		close(d.stop)
		return ctx.Err()
	}
}

var _ Dispatcher = (*AsyncDispatcher)(nil)
