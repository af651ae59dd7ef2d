package records

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/pkg/datefmt"
)

type memStore struct {
	mu      sync.Mutex
	docs    map[string]models.ExceptionRecord
	failing error
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]models.ExceptionRecord{}}
}

func (m *memStore) List(context.Context) ([]models.ExceptionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ExceptionRecord, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, id string) (models.ExceptionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return doc, models.ErrNotFound
	}
	return doc, nil
}

func (m *memStore) Insert(_ context.Context, doc models.ExceptionRecord) (primitive.ObjectID, error) {
	if m.failing != nil {
		return primitive.NilObjectID, m.failing
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	doc.ID = id
	m.docs[id.Hex()] = doc
	return id, nil
}

func (m *memStore) Update(_ context.Context, id string, doc models.ExceptionRecord) (models.ExceptionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[id]
	if !ok {
		return doc, models.ErrNotFound
	}
	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	m.docs[id] = doc
	return doc, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func newTestService(store *memStore, strict bool) *Service[models.ExceptionRecord, *models.ExceptionRecord] {
	svc := NewService[models.ExceptionRecord](store, Options{
		StrictDates: strict,
		Normalizer: &datefmt.Normalizer{
			Now:      func() time.Time { return time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC) },
			Location: time.UTC,
		},
	}, nil)
	svc.now = func() time.Time { return time.Date(2025, time.May, 2, 8, 30, 0, 0, time.UTC) }
	return svc
}

func TestCreateNormalizesAndStamps(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, false)

	rec, err := svc.Create(context.Background(), models.ExceptionRecord{
		Date:          "5/1",
		ExceptionType: models.ExceptionNoTracking,
		CustomerCode:  "c9",
	})
	require.NoError(t, err)

	assert.False(t, rec.ID.IsZero())
	assert.Equal(t, "05/01/2025", rec.Date)
	assert.Equal(t, "C9", rec.CustomerCode)
	assert.Equal(t, time.Date(2025, time.May, 2, 8, 30, 0, 0, time.UTC), rec.CreatedAt)

	stored, err := svc.Get(context.Background(), rec.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, rec.CreatedAt, stored.CreatedAt)
}

func TestCreateRejectsInvalidRecord(t *testing.T) {
	svc := newTestService(newMemStore(), false)

	_, err := svc.Create(context.Background(), models.ExceptionRecord{Date: "05/01/2025", ExceptionType: "Lost"})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "exceptionType", verr.Field)
}

func TestCreateKeepsUnrecognizedDateUnlessStrict(t *testing.T) {
	lenient := newTestService(newMemStore(), false)
	rec, err := lenient.Create(context.Background(), models.ExceptionRecord{Date: "yesterday", ExceptionType: models.ExceptionOutOfStock})
	require.NoError(t, err)
	assert.Equal(t, "yesterday", rec.Date)

	strict := newTestService(newMemStore(), true)
	_, err = strict.Create(context.Background(), models.ExceptionRecord{Date: "yesterday", ExceptionType: models.ExceptionOutOfStock})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
	assert.Contains(t, verr.Error(), "yesterday")
}

func TestCreatePropagatesStoreErrors(t *testing.T) {
	store := newMemStore()
	store.failing = errors.New("no primary")
	svc := newTestService(store, false)

	_, err := svc.Create(context.Background(), models.ExceptionRecord{Date: "05/01/2025", ExceptionType: models.ExceptionOutOfStock})
	assert.EqualError(t, err, "no primary")
}

func TestUpdatePreservesIdentity(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, false)

	created, err := svc.Create(context.Background(), models.ExceptionRecord{Date: "05/01/2025", ExceptionType: models.ExceptionOutOfStock})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID.Hex(), models.ExceptionRecord{
		ID:            primitive.NewObjectID(),
		Date:          "2025-04-30T12:00:00Z",
		ExceptionType: models.ExceptionWrongShipment,
		Note:          "relabeled",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "04/30/2025", updated.Date)
	assert.Equal(t, models.ExceptionWrongShipment, updated.ExceptionType)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	svc := newTestService(newMemStore(), false)
	missing := primitive.NewObjectID().Hex()

	_, err := svc.Update(context.Background(), missing, models.ExceptionRecord{Date: "05/01/2025", ExceptionType: models.ExceptionOutOfStock})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), missing), models.ErrNotFound)
}

func TestRenormalizeRewritesOnlyChangedRecords(t *testing.T) {
	store := newMemStore()
	legacyID := primitive.NewObjectID()
	cleanID := primitive.NewObjectID()
	created := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	store.docs[legacyID.Hex()] = models.ExceptionRecord{ID: legacyID, Date: "4/8", ExceptionType: models.ExceptionOutOfStock, SKU: " ａ1 ", CreatedAt: created}
	store.docs[cleanID.Hex()] = models.ExceptionRecord{ID: cleanID, Date: "04/08/2025", ExceptionType: models.ExceptionOutOfStock, CreatedAt: created}
	svc := newTestService(store, false)

	changed, err := svc.Renormalize(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, "4/8", store.docs[legacyID.Hex()].Date)

	changed, err = svc.Renormalize(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	legacy := store.docs[legacyID.Hex()]
	assert.Equal(t, "04/08/2025", legacy.Date)
	assert.Equal(t, legacyID, legacy.ID)
	assert.Equal(t, created, legacy.CreatedAt)

	changed, err = svc.Renormalize(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, changed)
}
