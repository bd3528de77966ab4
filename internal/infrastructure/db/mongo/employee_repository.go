package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

const collectionEmployees = "employees"

type EmployeeRepository struct {
	col *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collectionEmployees)}
}

// Create inserts a new employee document.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	_, err := r.col.InsertOne(ctx, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmployeeExists
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *EmployeeRepository) FindByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employee, error) {
	var e domain.Employee
	err := r.col.FindOne(ctx, filter).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Update replaces the document only if its stored version still equals
// expectedVersion. A zero match count means a concurrent writer won the race.
func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee, expectedVersion int64) error {
	filter := bson.M{"_id": e.ID, "version": expectedVersion}
	res, err := r.col.ReplaceOne(ctx, filter, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing document from a stale version.
		if err := r.col.FindOne(ctx, bson.M{"_id": e.ID}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrEmployeeNotFound
		}
		return domain.ErrVersionConflict
	}
	return nil
}

// List returns a page of employees matching filter and the total count.
func (r *EmployeeRepository) List(ctx context.Context, f ports.ListEmployeesFilter) ([]*domain.Employee, int64, error) {
	filter := bson.M{}
	if f.ManagerID != "" {
		filter["manager_id"] = f.ManagerID
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.VerificationStatus != "" {
		filter["verification_status"] = f.VerificationStatus
	}
	if f.EmploymentStatus != "" {
		filter["employment_status"] = f.EmploymentStatus
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	limit := int64(f.Limit)
	skip := int64(f.Page-1) * limit
	if skip < 0 {
		skip = 0
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.Employee
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// EnsureIndexes creates necessary indexes on the employees collection.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "manager_id", Value: 1}}},
		{Keys: bson.D{{Key: "verification_status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
