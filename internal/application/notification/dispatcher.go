package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultSendTimeout = 15 * time.Second
	defaultConcurrency = 4
	queuePerWorker     = 64
)

// Dispatcher sends messages on a fixed pool of workers with a bounded
// timeout. Send failures are logged and never reach the caller.
type Dispatcher struct {
	mailer  Mailer
	timeout time.Duration
	queue   chan Message
	logger  *zap.Logger

	pending sync.WaitGroup
	workers sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
}

// NewDispatcher starts concurrency workers; at most concurrency sends run at once
func NewDispatcher(mailer Mailer, timeout time.Duration, concurrency int, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		mailer:  mailer,
		timeout: timeout,
		queue:   make(chan Message, concurrency*queuePerWorker),
		logger:  logger,
	}
	d.workers.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go d.work()
	}
	return d
}

// Enqueue hands the message to the workers and returns immediately. When
// the queue is full the message is dropped.
func (d *Dispatcher) Enqueue(msg Message) {
	if len(msg.To) == 0 {
		d.logger.Warn("Dropping email without recipients", zap.String("subject", msg.Subject))
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("Dropping email after shutdown", zap.String("subject", msg.Subject))
		return
	}
	d.pending.Add(1)
	select {
	case d.queue <- msg:
	default:
		d.pending.Done()
		d.logger.Warn("Email queue full, dropping message",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Int("capacity", cap(d.queue)))
	}
}

func (d *Dispatcher) work() {
	defer d.workers.Done()
	for msg := range d.queue {
		d.send(msg)
		d.pending.Done()
	}
}

func (d *Dispatcher) send(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Mailer panicked", zap.String("subject", msg.Subject), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	if err := d.mailer.Send(ctx, msg); err != nil {
		d.logger.Warn("Failed to send email",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}
	d.logger.Debug("Email sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Duration("elapsed", time.Since(start)))
}

// Wait blocks until queued sends finish or ctx is done
func (d *Dispatcher) Wait(ctx context.Context) error {
	return waitGroup(ctx, &d.pending)
}

// Close stops accepting messages and waits for the workers to drain the queue
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	return waitGroup(ctx, &d.workers)
}

func waitGroup(ctx context.Context, wg *sync.WaitGroup) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Queue = (*Dispatcher)(nil)
