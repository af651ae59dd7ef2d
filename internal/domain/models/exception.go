package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipdesk/backoffice/pkg/datefmt"
)

// ExceptionType enumerates the shipment exception categories.
type ExceptionType string

const (
	ExceptionNoTracking    ExceptionType = "NoTracking"
	ExceptionOutOfStock    ExceptionType = "OutOfStock"
	ExceptionWrongShipment ExceptionType = "WrongShipment"
)

// ExceptionTypes lists the supported categories in reporting order.
var ExceptionTypes = []ExceptionType{ExceptionNoTracking, ExceptionOutOfStock, ExceptionWrongShipment}

// Valid reports whether t is one of the supported categories.
func (t ExceptionType) Valid() bool {
	for _, known := range ExceptionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ExceptionRecord is a shipment exception logged by the warehouse team.
type ExceptionRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Date           string             `bson:"date" json:"date" binding:"required"`
	ExceptionType  ExceptionType      `bson:"exceptionType" json:"exceptionType" binding:"required,oneof=NoTracking OutOfStock WrongShipment"`
	CustomerCode   string             `bson:"customerCode" json:"customerCode"`
	TrackingNumber string             `bson:"trackingNumber" json:"trackingNumber"`
	SKU            string             `bson:"sku" json:"sku"`
	Note           string             `bson:"note" json:"note"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// Normalize rewrites the record into its stored form.
func (r *ExceptionRecord) Normalize(n *datefmt.Normalizer) {
	r.Date = n.NormalizeDate(r.Date)
	r.CustomerCode = cleanCode(r.CustomerCode)
	r.TrackingNumber = cleanIdentifier(r.TrackingNumber)
	r.SKU = cleanIdentifier(r.SKU)
}

// Validate checks required fields and the exception type.
func (r *ExceptionRecord) Validate() error {
	if err := requireField("date", r.Date); err != nil {
		return err
	}
	if !r.ExceptionType.Valid() {
		return invalid("exceptionType", "`%s` is not a valid exception type", r.ExceptionType)
	}
	return nil
}

// RecordDate returns the record's date string.
func (r *ExceptionRecord) RecordDate() string { return r.Date }

// RecordID returns the store-assigned id.
func (r *ExceptionRecord) RecordID() primitive.ObjectID { return r.ID }

// Stamp sets the identity fields assigned by the store.
func (r *ExceptionRecord) Stamp(id primitive.ObjectID, createdAt time.Time) {
	r.ID = id
	r.CreatedAt = createdAt
}

// ExceptionExportHeaders are the spreadsheet columns for exception exports.
var ExceptionExportHeaders = []string{"Date", "Type", "Customer", "Tracking Number", "Courier", "SKU", "Note", "Created At"}

// ExportRow renders the record as spreadsheet cells.
func (r *ExceptionRecord) ExportRow() []any {
	return []any{
		datefmt.NormalizeDate(r.Date),
		string(r.ExceptionType),
		r.CustomerCode,
		r.TrackingNumber,
		string(ClassifyCourier(r.TrackingNumber)),
		r.SKU,
		r.Note,
		r.CreatedAt,
	}
}
