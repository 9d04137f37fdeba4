// Package audit records who changed what on the admin surface.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audited actions
const (
	ActionOrderStatusChanged = "order.status_changed"
	ActionOrderTracking      = "order.tracking_updated"
	ActionOrderShipment      = "order.shipment_updated"
	ActionStockUpdated       = "inventory.stock_updated"
	ActionStockBulkUpdated   = "inventory.stock_bulk_updated"
	ActionProductCreated     = "catalog.product_created"
	ActionProductUpdated     = "catalog.product_updated"
)

// Entry is one audit record
type Entry struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	ActorID    *uuid.UUID     `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Action     string         `json:"action" bson:"action"`
	EntityType string         `json:"entity_type" bson:"entity_type"`
	EntityID   string         `json:"entity_id" bson:"entity_id"`
	Details    map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// NewEntry creates an entry stamped with the current time
func NewEntry(actorID *uuid.UUID, action, entityType, entityID string, details map[string]any) Entry {
	return Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
}

// Query selects audit entries, newest first
type Query struct {
	EntityType string
	EntityID   string
	Limit      int
}

// Log stores and reads audit entries
type Log interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, q Query) ([]Entry, error)
}

type actorKey struct{}

// WithActor stores the acting user in the context
func WithActor(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFrom returns the acting user stored in the context, if any
func ActorFrom(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok {
		return &id
	}
	return nil
}
