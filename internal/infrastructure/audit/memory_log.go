package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	domainaudit "github.com/renztrending/backend/internal/domain/audit"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const memoryCapacity = 1000

var _ domainaudit.Log = (*MemoryLog)(nil)

// MemoryLog keeps the most recent entries in a ring; used when Mongo is off
type MemoryLog struct {
	mu       sync.RWMutex
	entries  []domainaudit.Entry
	capacity int
}

// NewMemoryLog creates a log holding at most capacity entries
func NewMemoryLog(capacity int) *MemoryLog {
	if capacity <= 0 {
		capacity = memoryCapacity
	}
	return &MemoryLog{capacity: capacity}
}

func (l *MemoryLog) Record(ctx context.Context, entry domainaudit.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
	return nil
}

func (l *MemoryLog) Recent(ctx context.Context, q domainaudit.Query) ([]domainaudit.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := clampLimit(q.Limit)

	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domainaudit.Entry, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := l.entries[i]
		if q.EntityType != "" && e.EntityType != q.EntityType {
			continue
		}
		if q.EntityID != "" && e.EntityID != q.EntityID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Close is a no-op
func (l *MemoryLog) Close(context.Context) error { return nil }

// Store is an audit log that may own a connection
type Store interface {
	domainaudit.Log
	Close(ctx context.Context) error
}

// NewStore connects to Mongo when enabled and falls back to memory otherwise
func NewStore(ctx context.Context, cfg config.AuditConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("Audit store disabled, keeping recent entries in memory")
		return NewMemoryLog(memoryCapacity), nil
	}
	l, err := Connect(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := l.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to create audit indexes", zap.Error(err))
	}
	logger.Info("Audit store connected",
		zap.String("database", cfg.Database),
		zap.String("collection", cfg.Collection))
	return l, nil
}
