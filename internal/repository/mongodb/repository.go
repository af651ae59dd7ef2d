package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shipdesk/backoffice/internal/domain/models"
)

// Collection names used by the back office.
const (
	ExpressCollection   = "express_volumes"
	ExceptionCollection = "exceptions"
	ContainerCollection = "containers"
	InventoryCollection = "inventory_exceptions"
	SnapshotCollection  = "stats_snapshots"
)

// MongoDBRepository owns the client connection and hands out typed collections.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Exceptions returns the shipment exception collection.
func (r *MongoDBRepository) Exceptions() *RecordCollection[models.ExceptionRecord] {
	return NewRecordCollection[models.ExceptionRecord](r.db.Collection(ExceptionCollection), "exception")
}

// Express returns the express volume collection.
func (r *MongoDBRepository) Express() *RecordCollection[models.ExpressVolumeRecord] {
	return NewRecordCollection[models.ExpressVolumeRecord](r.db.Collection(ExpressCollection), "express volume")
}

// Containers returns the container arrival collection.
func (r *MongoDBRepository) Containers() *RecordCollection[models.ContainerRecord] {
	return NewRecordCollection[models.ContainerRecord](r.db.Collection(ContainerCollection), "container")
}

// Inventory returns the inventory discrepancy collection.
func (r *MongoDBRepository) Inventory() *RecordCollection[models.InventoryExceptionRecord] {
	return NewRecordCollection[models.InventoryExceptionRecord](r.db.Collection(InventoryCollection), "inventory exception")
}

// Snapshots returns the monthly report snapshot store.
func (r *MongoDBRepository) Snapshots() *SnapshotStore {
	return NewSnapshotStore(r.db.Collection(SnapshotCollection))
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
