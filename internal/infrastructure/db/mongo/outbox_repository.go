package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

const collectionOutbox = "outbox_events"

// OutboxRepository stores domain events in MongoDB. Appends join the caller's
// session transaction so events commit together with the aggregate mutation.
type OutboxRepository struct {
	col *mongo.Collection
}

func NewOutboxRepository(db *mongo.Database) *OutboxRepository {
	return &OutboxRepository{col: db.Collection(collectionOutbox)}
}

func (r *OutboxRepository) Append(ctx context.Context, event *domain.DomainEvent) error {
	_, err := r.col.InsertOne(ctx, event)
	return err
}

// FetchUnpublished returns up to limit unpublished events, oldest first.
func (r *OutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]*domain.DomainEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"published": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []*domain.DomainEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// MarkPublished is idempotent: marking an already-published event matches zero
// documents and succeeds without touching published_at again.
func (r *OutboxRepository) MarkPublished(ctx context.Context, eventID string, publishedAt time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": eventID, "published": false},
		bson.M{"$set": bson.M{"published": true, "published_at": publishedAt.UTC()}},
	)
	return err
}

// Cleanup hard-deletes published events older than the retention cutoff.
func (r *OutboxRepository) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{
		"published":   true,
		"occurred_at": bson.M{"$lt": olderThan.UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes on the outbox collection.
func (r *OutboxRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "occurred_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
