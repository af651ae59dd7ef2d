package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shipdesk/backoffice/internal/domain/models"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func exceptionDoc(id primitive.ObjectID, date, sku string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "date", Value: date},
		{Key: "exceptionType", Value: "NoTracking"},
		{Key: "sku", Value: sku},
		{Key: "createdAt", Value: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestRecordCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list decodes every batch", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, namespace(mt), mtest.FirstBatch, exceptionDoc(id1, "03/02/2025", "A")),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.NextBatch, exceptionDoc(id2, "03/01/2025", "B")),
		)

		records, err := coll.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, id1, records[0].ID)
		assert.Equal(mt, "B", records[1].SKU)
		assert.Equal(mt, models.ExceptionNoTracking, records[0].ExceptionType)
	})

	mt.Run("list of empty collection is not nil", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		records, err := coll.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, records)
		assert.Empty(mt, records)
	})

	mt.Run("list wraps command errors", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad sort"}))

		_, err := coll.List(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "find exception records")
	})

	mt.Run("get returns the document", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, exceptionDoc(id, "03/02/2025", "A")))

		rec, err := coll.Get(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "03/02/2025", rec.Date)
	})

	mt.Run("get of missing document", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := coll.Get(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("malformed id is not found without a round trip", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")

		_, err := coll.Get(context.Background(), "not-an-id")
		assert.ErrorIs(mt, err, models.ErrNotFound)
		assert.ErrorIs(mt, coll.Delete(context.Background(), "xyz"), models.ErrNotFound)
	})

	mt.Run("insert returns generated id", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := coll.Insert(context.Background(), models.ExceptionRecord{Date: "03/02/2025", ExceptionType: models.ExceptionOutOfStock})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("update returns stored document", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: exceptionDoc(id, "03/05/2025", "Z")}))

		rec, err := coll.Update(context.Background(), id.Hex(), models.ExceptionRecord{Date: "03/05/2025", SKU: "Z"})
		require.NoError(mt, err)
		assert.Equal(mt, id, rec.ID)
		assert.Equal(mt, "Z", rec.SKU)
		assert.False(mt, rec.CreatedAt.IsZero())
	})

	mt.Run("update clears an emptied arrival time", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ContainerRecord](mt.Coll, "container")
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "date", Value: "03/05/2025"},
			{Key: "containerNumber", Value: "C1"},
			{Key: "arrivalTime", Value: ""},
		}}))

		rec, err := coll.Update(context.Background(), id.Hex(), models.ContainerRecord{
			Date:            "03/05/2025",
			ContainerNumber: "C1",
			Type:            models.ContainerFull,
			CustomerCode:    "X",
			Status:          models.StatusCompleted,
			IssueNote:       "n",
		})
		require.NoError(mt, err)
		assert.Empty(mt, rec.ArrivalTime)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		arrival, err := started.Command.LookupErr("update", "$set", "arrivalTime")
		require.NoError(mt, err, "$set must carry arrivalTime so an update can clear it")
		assert.Equal(mt, "", arrival.StringValue())
		_, err = started.Command.LookupErr("update", "$set", "createdAt")
		assert.Error(mt, err, "createdAt must not be overwritten")
	})

	mt.Run("update of missing document", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := coll.Update(context.Background(), primitive.NewObjectID().Hex(), models.ExceptionRecord{Date: "03/05/2025"})
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		coll := NewRecordCollection[models.ExceptionRecord](mt.Coll, "exception")
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, coll.Delete(context.Background(), primitive.NewObjectID().Hex()))
		assert.ErrorIs(mt, coll.Delete(context.Background(), primitive.NewObjectID().Hex()), models.ErrNotFound)
	})
}

func TestSnapshotStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save upserts by period", func(mt *mtest.T) {
		store := NewSnapshotStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := store.SaveSnapshot(context.Background(), models.StatsSnapshot{Period: "2025-02"})
		require.NoError(mt, err)
	})

	mt.Run("list", func(mt *mtest.T) {
		store := NewSnapshotStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "period", Value: "2025-02"}, {Key: "report", Value: bson.D{{Key: "monthlyAverage", Value: 4.5}}}},
		))

		snapshots, err := store.ListSnapshots(context.Background())
		require.NoError(mt, err)
		require.Len(mt, snapshots, 1)
		assert.Equal(mt, "2025-02", snapshots[0].Period)
		assert.Equal(mt, 4.5, snapshots[0].Report.MonthlyAverage)
	})
}
