package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipdesk/backoffice/pkg/datefmt"
)

// ExpressVolumeRecord captures one day of outbound courier volume.
type ExpressVolumeRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Date              string             `bson:"date" json:"date" binding:"required"`
	LegacySystemTotal int                `bson:"legacySystemTotal" json:"legacySystemTotal" binding:"min=0"`
	NewSystemTotal    int                `bson:"newSystemTotal" json:"newSystemTotal" binding:"min=0"`
	FedexTotal        int                `bson:"fedexTotal" json:"fedexTotal" binding:"min=0"`
	UPSTotal          int                `bson:"upsTotal" json:"upsTotal" binding:"min=0"`
	FedexA008Count    int                `bson:"fedexA008Count" json:"fedexA008Count" binding:"min=0"`
	UPSA008Count      int                `bson:"upsA008Count" json:"upsA008Count" binding:"min=0"`
	BatteryPanelCount int                `bson:"batteryPanelCount" json:"batteryPanelCount" binding:"min=0"`
	FedexStorageCount int                `bson:"fedexStorageCount" json:"fedexStorageCount" binding:"min=0"`
	UPSStorageCount   int                `bson:"upsStorageCount" json:"upsStorageCount" binding:"min=0"`
	CompletionTime    string             `bson:"completionTime" json:"completionTime"`
	Headcount         int                `bson:"headcount" json:"headcount" binding:"min=0"`
	Note              string             `bson:"note" json:"note"`
	CreatedAt         time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// ShipmentVolume is the number of parcels handed to couriers that day.
func (r *ExpressVolumeRecord) ShipmentVolume() int {
	return r.FedexTotal + r.UPSTotal
}

// Normalize rewrites the record into its stored form.
func (r *ExpressVolumeRecord) Normalize(n *datefmt.Normalizer) {
	r.Date = n.NormalizeDate(r.Date)
	r.CompletionTime = n.NormalizeTime(r.CompletionTime)
}

// Validate checks the date and that every counter is non-negative.
func (r *ExpressVolumeRecord) Validate() error {
	if err := requireField("date", r.Date); err != nil {
		return err
	}
	return requireNonNegative(
		counter{"legacySystemTotal", r.LegacySystemTotal},
		counter{"newSystemTotal", r.NewSystemTotal},
		counter{"fedexTotal", r.FedexTotal},
		counter{"upsTotal", r.UPSTotal},
		counter{"fedexA008Count", r.FedexA008Count},
		counter{"upsA008Count", r.UPSA008Count},
		counter{"batteryPanelCount", r.BatteryPanelCount},
		counter{"fedexStorageCount", r.FedexStorageCount},
		counter{"upsStorageCount", r.UPSStorageCount},
		counter{"headcount", r.Headcount},
	)
}

// RecordDate returns the record's date string.
func (r *ExpressVolumeRecord) RecordDate() string { return r.Date }

// RecordID returns the store-assigned id.
func (r *ExpressVolumeRecord) RecordID() primitive.ObjectID { return r.ID }

// Stamp sets the identity fields assigned by the store.
func (r *ExpressVolumeRecord) Stamp(id primitive.ObjectID, createdAt time.Time) {
	r.ID = id
	r.CreatedAt = createdAt
}

// ExpressExportHeaders are the spreadsheet columns for express volume exports.
var ExpressExportHeaders = []string{
	"Date", "Legacy System", "New System", "FedEx", "UPS", "FedEx A008", "UPS A008",
	"Battery Panels", "FedEx Storage", "UPS Storage", "Completion Time", "Headcount", "Note",
}

// ExportRow renders the record as spreadsheet cells.
func (r *ExpressVolumeRecord) ExportRow() []any {
	return []any{
		datefmt.NormalizeDate(r.Date),
		r.LegacySystemTotal,
		r.NewSystemTotal,
		r.FedexTotal,
		r.UPSTotal,
		r.FedexA008Count,
		r.UPSA008Count,
		r.BatteryPanelCount,
		r.FedexStorageCount,
		r.UPSStorageCount,
		datefmt.NormalizeTime(r.CompletionTime),
		r.Headcount,
		r.Note,
	}
}
