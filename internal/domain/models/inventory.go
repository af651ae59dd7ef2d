package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipdesk/backoffice/pkg/datefmt"
)

// InventoryExceptionRecord is a stock count that disagrees with the WMS.
type InventoryExceptionRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Date         string             `bson:"date" json:"date" binding:"required"`
	CustomerCode string             `bson:"customerCode" json:"customerCode"`
	SKU          string             `bson:"sku" json:"sku"`
	ProductName  string             `bson:"productName" json:"productName"`
	ActualStock  int                `bson:"actualStock" json:"actualStock"`
	SystemStock  int                `bson:"systemStock" json:"systemStock"`
	Location     string             `bson:"location" json:"location"`
	Note         string             `bson:"note" json:"note"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// Difference is the physical count minus the system count.
func (r *InventoryExceptionRecord) Difference() int {
	return r.ActualStock - r.SystemStock
}

// MarshalJSON adds the derived difference to the wire form.
func (r InventoryExceptionRecord) MarshalJSON() ([]byte, error) {
	type plain InventoryExceptionRecord
	return json.Marshal(struct {
		plain
		Difference int `json:"difference"`
	}{plain(r), r.Difference()})
}

// Normalize rewrites the record into its stored form.
func (r *InventoryExceptionRecord) Normalize(n *datefmt.Normalizer) {
	r.Date = n.NormalizeDate(r.Date)
	r.CustomerCode = cleanCode(r.CustomerCode)
	r.SKU = cleanIdentifier(r.SKU)
	r.Location = cleanCode(r.Location)
}

// Validate checks required fields.
func (r *InventoryExceptionRecord) Validate() error {
	return requireField("date", r.Date)
}

// RecordDate returns the record's date string.
func (r *InventoryExceptionRecord) RecordDate() string { return r.Date }

// RecordID returns the store-assigned id.
func (r *InventoryExceptionRecord) RecordID() primitive.ObjectID { return r.ID }

// Stamp sets the identity fields assigned by the store.
func (r *InventoryExceptionRecord) Stamp(id primitive.ObjectID, createdAt time.Time) {
	r.ID = id
	r.CreatedAt = createdAt
}

// InventoryExportHeaders are the spreadsheet columns for inventory exports.
var InventoryExportHeaders = []string{"Date", "Customer", "SKU", "Product", "Actual", "System", "Difference", "Location", "Note"}

// ExportRow renders the record as spreadsheet cells.
func (r *InventoryExceptionRecord) ExportRow() []any {
	return []any{
		datefmt.NormalizeDate(r.Date),
		r.CustomerCode,
		r.SKU,
		r.ProductName,
		r.ActualStock,
		r.SystemStock,
		r.Difference(),
		r.Location,
		r.Note,
	}
}
