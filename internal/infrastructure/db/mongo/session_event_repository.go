package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/ports"
)

const sessionEventsCollection = "session_events"

// SessionEventRepository implements ports.SessionEventRepository using MongoDB.
type SessionEventRepository struct {
	coll *mongo.Collection
}

func NewSessionEventRepository(db *mongo.Database) ports.SessionEventRepository {
	return &SessionEventRepository{coll: db.Collection(sessionEventsCollection)}
}

// InsertEvent appends one entry to the audit collection.
func (r *SessionEventRepository) InsertEvent(ctx context.Context, event *domain.SessionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert session event: %w", err)
	}
	return nil
}

// ListByUser returns the newest events for userID first.
func (r *SessionEventRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SessionEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list session events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.SessionEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode session events: %w", err)
	}
	return events, nil
}
