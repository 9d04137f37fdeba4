package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDedupTTL is how long a handled event ID is remembered
const DefaultDedupTTL = 24 * time.Hour

// DedupStats counts what a DedupHandler did
type DedupStats struct {
	Processed int64 `json:"processed"`
	Duplicate int64 `json:"duplicate"`
	Failed    int64 `json:"failed"`
}

// DedupHandler runs the wrapped handler at most once per event ID. Handlers
// with side effects outside the database (email) are wrapped with it.
type DedupHandler struct {
	next   shared.EventHandler
	store  shared.IdempotencyStore
	name   string
	ttl    time.Duration
	logger *zap.Logger

	processed atomic.Int64
	duplicate atomic.Int64
	failed    atomic.Int64
}

// NewDedupHandler wraps next. name scopes the claim keys so two handlers
// can both see the same event.
func NewDedupHandler(name string, next shared.EventHandler, store shared.IdempotencyStore, ttl time.Duration, logger *zap.Logger) *DedupHandler {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DedupHandler{next: next, store: store, name: name, ttl: ttl, logger: logger}
}

func (h *DedupHandler) EventTypes() []string {
	return h.next.EventTypes()
}

func (h *DedupHandler) key(e shared.DomainEvent) string {
	return "event:" + h.name + ":" + e.EventID().String()
}

// Handle claims the event before running the wrapped handler. If the store
// is unreachable the event is processed anyway; a failed run drops the claim.
func (h *DedupHandler) Handle(ctx context.Context, e shared.DomainEvent) error {
	key := h.key(e)
	fresh, err := h.store.MarkProcessed(ctx, key, h.ttl)
	switch {
	case err != nil:
		h.logger.Warn("Dedup store unavailable, handling event anyway",
			zap.String("event_id", e.EventID().String()),
			zap.Error(err))
	case !fresh:
		h.duplicate.Add(1)
		h.logger.Debug("Duplicate event skipped",
			zap.String("handler", h.name),
			zap.String("event_id", e.EventID().String()))
		return nil
	}

	if err := h.next.Handle(ctx, e); err != nil {
		h.failed.Add(1)
		if relErr := h.store.Release(ctx, key); relErr != nil {
			h.logger.Warn("Failed to release event claim", zap.String("key", key), zap.Error(relErr))
		}
		return err
	}
	h.processed.Add(1)
	return nil
}

// Stats returns a snapshot of the counters
func (h *DedupHandler) Stats() DedupStats {
	return DedupStats{
		Processed: h.processed.Load(),
		Duplicate: h.duplicate.Load(),
		Failed:    h.failed.Load(),
	}
}

var _ shared.EventHandler = (*DedupHandler)(nil)
