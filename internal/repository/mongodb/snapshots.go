package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shipdesk/backoffice/internal/domain/models"
)

// SnapshotStore keeps one exception report per month.
type SnapshotStore struct {
	coll *mongo.Collection
}

// NewSnapshotStore wraps coll.
func NewSnapshotStore(coll *mongo.Collection) *SnapshotStore {
	return &SnapshotStore{coll: coll}
}

// SaveSnapshot upserts the snapshot for its period, so a rerun replaces the earlier one.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot models.StatsSnapshot) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"period": snapshot.Period}, snapshot, opts); err != nil {
		return fmt.Errorf("failed to save stats snapshot %s: %w", snapshot.Period, err)
	}
	return nil
}

// ListSnapshots returns stored snapshots, latest period first.
func (s *SnapshotStore) ListSnapshots(ctx context.Context) ([]models.StatsSnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "period", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find stats snapshots: %w", err)
	}

	snapshots := make([]models.StatsSnapshot, 0)
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("decode stats snapshots: %w", err)
	}
	return snapshots, nil
}
