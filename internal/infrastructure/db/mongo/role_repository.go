package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

const collectionRoleAssignments = "role_assignments"

type RoleAssignmentRepository struct {
	col *mongo.Collection
}

func NewRoleAssignmentRepository(db *mongo.Database) *RoleAssignmentRepository {
	return &RoleAssignmentRepository{col: db.Collection(collectionRoleAssignments)}
}

func (r *RoleAssignmentRepository) Insert(ctx context.Context, a *domain.RoleAssignment) error {
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *RoleAssignmentRepository) FindActiveByUser(ctx context.Context, userID string) ([]*domain.RoleAssignment, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID, "is_active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var assignments []*domain.RoleAssignment
	if err := cur.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindActiveByUserAndRole returns nil, nil when no active assignment exists;
// absence is an expected outcome for the role service's checks, not an error.
func (r *RoleAssignmentRepository) FindActiveByUserAndRole(ctx context.Context, userID string, role domain.RoleCode) (*domain.RoleAssignment, error) {
	var a domain.RoleAssignment
	err := r.col.FindOne(ctx, bson.M{
		"user_id":   userID,
		"role_code": string(role),
		"is_active": true,
	}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// RevokeAllActive deactivates every active assignment of the user. The revoked
// assignments are read first so callers can emit one role.revoked event each;
// both operations join the caller's session transaction.
func (r *RoleAssignmentRepository) RevokeAllActive(ctx context.Context, userID string, revokedAt time.Time) ([]*domain.RoleAssignment, error) {
	active, err := r.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}

	_, err = r.col.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "revoked_at": revokedAt.UTC()}},
	)
	if err != nil {
		return nil, err
	}

	for _, a := range active {
		a.IsActive = false
		ts := revokedAt.UTC()
		a.RevokedAt = &ts
	}
	return active, nil
}

func (r *RoleAssignmentRepository) Revoke(ctx context.Context, id string, revokedAt time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "revoked_at": revokedAt.UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoleNotAssigned
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the role_assignments collection.
func (r *RoleAssignmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "role_code", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
