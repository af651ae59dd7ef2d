// Package records implements the create/read/update/delete flow shared by every
// back-office collection: normalize, validate, stamp, persist.
package records

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/pkg/datefmt"
)

// Store persists one record type.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, doc T) (primitive.ObjectID, error)
	Update(ctx context.Context, id string, doc T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Record is the pointer form of a storable record type.
type Record[T any] interface {
	*T
	Normalize(n *datefmt.Normalizer)
	Validate() error
	RecordDate() string
	RecordID() primitive.ObjectID
	Stamp(id primitive.ObjectID, createdAt time.Time)
}

// Options tune write-path behavior.
type Options struct {
	// StrictDates rejects dates that do not normalize to MM/DD/YYYY instead of storing
	// them as typed.
	StrictDates bool
	Normalizer  *datefmt.Normalizer
}

// Service runs the write path for records of type T.
type Service[T any, P Record[T]] struct {
	store  Store[T]
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a record service over store.
func NewService[T any, P Record[T]](store Store[T], opts Options, logger *zap.Logger) *Service[T, P] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Normalizer == nil {
		opts.Normalizer = &datefmt.Normalizer{}
	}
	return &Service[T, P]{
		store:  store,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every record, newest first.
func (s *Service[T, P]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx)
}

// Get returns one record or models.ErrNotFound.
func (s *Service[T, P]) Get(ctx context.Context, id string) (T, error) {
	return s.store.Get(ctx, id)
}

// Create normalizes, validates and stores doc.
func (s *Service[T, P]) Create(ctx context.Context, doc T) (T, error) {
	if err := s.Prepare(&doc); err != nil {
		return doc, err
	}

	createdAt := s.now().UTC().Truncate(time.Millisecond)
	P(&doc).Stamp(primitive.NilObjectID, createdAt)

	id, err := s.store.Insert(ctx, doc)
	if err != nil {
		return doc, err
	}
	P(&doc).Stamp(id, createdAt)

	s.logger.Info("record created", zap.String("id", id.Hex()), zap.String("date", P(&doc).RecordDate()))
	return doc, nil
}

// Update replaces the mutable fields of the record with the given id.
func (s *Service[T, P]) Update(ctx context.Context, id string, doc T) (T, error) {
	if err := s.Prepare(&doc); err != nil {
		return doc, err
	}
	P(&doc).Stamp(primitive.NilObjectID, time.Time{})

	updated, err := s.store.Update(ctx, id, doc)
	if err != nil {
		return updated, err
	}

	s.logger.Info("record updated", zap.String("id", id))
	return updated, nil
}

// Delete removes the record with the given id.
func (s *Service[T, P]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("record deleted", zap.String("id", id))
	return nil
}

// Prepare applies write-path normalization and validation to doc in place.
func (s *Service[T, P]) Prepare(doc *T) error {
	rec := P(doc)
	raw := rec.RecordDate()
	rec.Normalize(s.opts.Normalizer)

	if err := rec.Validate(); err != nil {
		return err
	}

	if date := rec.RecordDate(); !datefmt.IsCanonicalDate(date) {
		if s.opts.StrictDates {
			return &models.ValidationError{Field: "date", Message: fmt.Sprintf("`%s` is not a recognizable date", raw)}
		}
		s.logger.Warn("storing date that is not canonical", zap.String("date", date))
	}
	return nil
}

// Renormalize re-applies write-path normalization to every stored record and writes
// back the ones that changed. With dryRun nothing is written. It returns the number
// of records that changed.
func (s *Service[T, P]) Renormalize(ctx context.Context, dryRun bool) (int, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range items {
		original := items[i]
		doc := items[i]
		rec := P(&doc)
		rec.Normalize(s.opts.Normalizer)
		if reflect.DeepEqual(original, doc) {
			continue
		}
		changed++

		id := P(&original).RecordID().Hex()
		s.logger.Info("record renormalized",
			zap.String("id", id),
			zap.String("from", P(&original).RecordDate()),
			zap.String("to", rec.RecordDate()),
			zap.Bool("dry_run", dryRun))
		if dryRun {
			continue
		}

		rec.Stamp(primitive.NilObjectID, time.Time{})
		if _, err := s.store.Update(ctx, id, doc); err != nil {
			return changed, fmt.Errorf("update record %s: %w", id, err)
		}
	}
	return changed, nil
}
