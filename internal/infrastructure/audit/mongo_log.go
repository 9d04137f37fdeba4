// Package audit stores the admin audit trail in MongoDB, or in memory when
// no Mongo deployment is configured.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	domainaudit "github.com/renztrending/backend/internal/domain/audit"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
	connectTimeout     = 10 * time.Second
)

var _ domainaudit.Log = (*MongoLog)(nil)

// MongoLog writes audit entries to a Mongo collection
type MongoLog struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// Connect dials Mongo and returns a log bound to the configured collection
func Connect(ctx context.Context, cfg config.AuditConfig, logger *zap.Logger) (*MongoLog, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect audit store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping audit store: %w", err)
	}

	l := NewMongoLog(client.Database(cfg.Database).Collection(cfg.Collection), logger)
	l.client = client
	return l, nil
}

// NewMongoLog wraps an existing collection
func NewMongoLog(collection *mongo.Collection, logger *zap.Logger) *MongoLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoLog{collection: collection, logger: logger}
}

// EnsureIndexes creates the entity lookup index
func (l *MongoLog) EnsureIndexes(ctx context.Context) error {
	_, err := l.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_type", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

// Record inserts one entry, assigning an ID and timestamp when missing
func (l *MongoLog) Record(ctx context.Context, entry domainaudit.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := l.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns matching entries, newest first
func (l *MongoLog) Recent(ctx context.Context, q domainaudit.Query) ([]domainaudit.Entry, error) {
	filter := bson.M{}
	if q.EntityType != "" {
		filter["entity_type"] = q.EntityType
	}
	if q.EntityID != "" {
		filter["entity_id"] = q.EntityID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(clampLimit(q.Limit)))

	cursor, err := l.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]domainaudit.Entry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}
	return entries, nil
}

// Close disconnects the client opened by Connect
func (l *MongoLog) Close(ctx context.Context) error {
	if l.client == nil {
		return nil
	}
	return l.client.Disconnect(ctx)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
