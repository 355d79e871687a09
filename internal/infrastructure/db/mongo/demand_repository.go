package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
)

const collectionDemands = "demands"

// DemandRepository implements ports.DemandRepository over the demands collection.
type DemandRepository struct {
	col *mongo.Collection
}

func NewDemandRepository(db *mongo.Database) *DemandRepository {
	return &DemandRepository{col: db.Collection(collectionDemands)}
}

// Create inserts a new demand document. The id is assigned here so callers
// get it back without a second round-trip.
func (r *DemandRepository) Create(ctx context.Context, d *domain.Demand) (*domain.Demand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *d
	created.ID = primitive.NewObjectID().Hex()

	if _, err := r.col.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert demand: %w", err)
	}
	return &created, nil
}

// ownerFilter builds the base id filter, additionally scoped to the owner
// when ownerID is non-empty. Owner scoping at the query level is what turns a
// foreign demand into a plain miss.
func ownerFilter(id, ownerID string) bson.M {
	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}
	return filter
}

func (r *DemandRepository) FindByID(ctx context.Context, id string, ownerID string) (*domain.Demand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Demand
	if err := r.col.FindOne(ctx, ownerFilter(id, ownerID)).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDemandNotFound
		}
		return nil, fmt.Errorf("find demand: %w", err)
	}
	return &d, nil
}

// ListByOwner returns the owner's demands, newest first.
func (r *DemandRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Demand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list demands: %w", err)
	}
	defer cur.Close(ctx)

	return decodeDemands(ctx, cur)
}

// List returns a page of demands matching the filter, newest first, plus the
// total count for the same filter.
func (r *DemandRepository) List(ctx context.Context, filter ports.ListDemandsFilter) ([]*domain.Demand, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		regex := searchRegex(filter.Search)
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count demands: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list demands: %w", err)
	}
	defer cur.Close(ctx)

	demands, err := decodeDemands(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return demands, total, nil
}

// searchRegex builds a case-insensitive substring matcher. The term is user
// input, so regex metacharacters are quoted to match literally.
func searchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// Update applies a partial content update scoped to the owner and returns the
// updated document.
func (r *DemandRepository) Update(ctx context.Context, id string, ownerID string, update ports.DemandUpdate) (*domain.Demand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Budget != nil {
		set["budget"] = *update.Budget
	}
	if update.Deadline != nil {
		set["deadline"] = *update.Deadline
	}
	if update.ContactPreference != nil {
		set["contact_preference"] = *update.ContactPreference
	}
	if update.Files != nil {
		set["files"] = update.Files
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d domain.Demand
	err := r.col.FindOneAndUpdate(ctx, ownerFilter(id, ownerID), bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDemandNotFound
		}
		return nil, fmt.Errorf("update demand: %w", err)
	}
	return &d, nil
}

// UpdateStatus sets the new status, the optional admin response, and appends
// a history entry in a single document update.
func (r *DemandRepository) UpdateStatus(ctx context.Context, id string, status domain.DemandStatus, adminResponse string) (*domain.Demand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"status":     string(status),
		"updated_at": now,
	}
	if adminResponse != "" {
		set["admin_response"] = adminResponse
	}

	historyEntry := bson.M{
		"status":    string(status),
		"timestamp": now,
	}
	if adminResponse != "" {
		historyEntry["note"] = adminResponse
	}

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"status_history": historyEntry},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d domain.Demand
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDemandNotFound
		}
		return nil, fmt.Errorf("update demand status: %w", err)
	}
	return &d, nil
}

func (r *DemandRepository) Delete(ctx context.Context, id string, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownerFilter(id, ownerID))
	if err != nil {
		return fmt.Errorf("delete demand: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDemandNotFound
	}
	return nil
}

// CountByStatus aggregates counts with one query per status, scoped to the
// owner when ownerID is non-empty.
func (r *DemandRepository) CountByStatus(ctx context.Context, ownerID string) (ports.StatusCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	base := bson.M{}
	if ownerID != "" {
		base["user_id"] = ownerID
	}

	var counts ports.StatusCounts
	var err error
	if counts.Total, err = r.col.CountDocuments(ctx, base); err != nil {
		return counts, fmt.Errorf("count demands: %w", err)
	}

	byStatus := map[domain.DemandStatus]*int64{
		domain.StatusPending:    &counts.Pending,
		domain.StatusInProgress: &counts.InProgress,
		domain.StatusCompleted:  &counts.Completed,
		domain.StatusCancelled:  &counts.Cancelled,
	}
	for status, dst := range byStatus {
		filter := bson.M{"status": string(status)}
		if ownerID != "" {
			filter["user_id"] = ownerID
		}
		if *dst, err = r.col.CountDocuments(ctx, filter); err != nil {
			return counts, fmt.Errorf("count demands by status: %w", err)
		}
	}
	return counts, nil
}

func (r *DemandRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}

// EnsureIndexes creates the indexes backing owner scoping and the admin listing.
func (r *DemandRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeDemands(ctx context.Context, cur *mongo.Cursor) ([]*domain.Demand, error) {
	demands := make([]*domain.Demand, 0)
	for cur.Next(ctx) {
		var d domain.Demand
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode demand: %w", err)
		}
		demands = append(demands, &d)
	}
	return demands, cur.Err()
}
