package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/demanddesk/api/internal/core/ports"
)

const collectionDemandEvents = "demand_events"

// AuditRepository persists demand lifecycle events to the demand_events
// audit collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionDemandEvents)}
}

// InsertEvent appends one lifecycle event to the audit trail.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *ports.DemandEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"kind":         event.Kind,
		"demand_id":    event.DemandID,
		"user_id":      event.OwnerID,
		"title":        event.Title,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.FromStatus != "" {
		doc["from_status"] = string(event.FromStatus)
	}
	if event.ToStatus != "" {
		doc["to_status"] = string(event.ToStatus)
	}
	if event.Note != "" {
		doc["note"] = event.Note
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
