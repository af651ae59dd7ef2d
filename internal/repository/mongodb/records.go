package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shipdesk/backoffice/internal/domain/models"
)

// RecordCollection stores one flat record type. Documents are decoded into T, which
// must carry `_id,omitempty` and `createdAt,omitempty` bson tags so updates leave both
// untouched.
type RecordCollection[T any] struct {
	coll *mongo.Collection
	name string
}

// NewRecordCollection wraps coll; name is used in error messages.
func NewRecordCollection[T any](coll *mongo.Collection, name string) *RecordCollection[T] {
	return &RecordCollection[T]{coll: coll, name: name}
}

// List returns every document, newest first.
func (c *RecordCollection[T]) List(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := c.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s records: %w", c.name, err)
	}

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode %s records: %w", c.name, err)
	}
	return results, nil
}

// Get returns the document with the given hex id.
func (c *RecordCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	oid, err := parseID(id)
	if err != nil {
		return doc, err
	}

	if err := c.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return doc, models.ErrNotFound
		}
		return doc, fmt.Errorf("find %s %s: %w", c.name, id, err)
	}
	return doc, nil
}

// Insert stores doc and returns the generated id.
func (c *RecordCollection[T]) Insert(ctx context.Context, doc T) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert %s: %w", c.name, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert %s: unexpected id type %T", c.name, res.InsertedID)
	}
	return oid, nil
}

// Update overwrites the mutable fields of the document with the given id and returns
// the stored result.
func (c *RecordCollection[T]) Update(ctx context.Context, id string, doc T) (T, error) {
	var updated T
	oid, err := parseID(id)
	if err != nil {
		return updated, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = c.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": doc}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return updated, models.ErrNotFound
		}
		return updated, fmt.Errorf("update %s %s: %w", c.name, id, err)
	}
	return updated, nil
}

// Delete removes the document with the given id.
func (c *RecordCollection[T]) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.name, id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// parseID maps malformed ids to ErrNotFound: no document can carry them.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrNotFound
	}
	return oid, nil
}
