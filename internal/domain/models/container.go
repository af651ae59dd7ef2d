package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipdesk/backoffice/pkg/datefmt"
)

// ContainerType describes how inbound cargo arrives.
type ContainerType string

const (
	ContainerFull   ContainerType = "FullContainer"
	ContainerLoose  ContainerType = "LooseCargo"
	ContainerPallet ContainerType = "Pallet"
)

// ContainerTypes lists the supported arrival types.
var ContainerTypes = []ContainerType{ContainerFull, ContainerLoose, ContainerPallet}

// ContainerStatus tracks unloading progress.
type ContainerStatus string

const (
	StatusCompleted           ContainerStatus = "Completed"
	StatusPendingUnload       ContainerStatus = "PendingUnload"
	StatusPendingVerification ContainerStatus = "PendingVerification"
	StatusHasIssue            ContainerStatus = "HasIssue"
)

// ContainerStatuses lists the supported statuses.
var ContainerStatuses = []ContainerStatus{StatusCompleted, StatusPendingUnload, StatusPendingVerification, StatusHasIssue}

// ContainerRecord is an inbound container or pallet arrival.
type ContainerRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Date            string             `bson:"date" json:"date" binding:"required"`
	ContainerNumber string             `bson:"containerNumber" json:"containerNumber" binding:"required"`
	Type            ContainerType      `bson:"type" json:"type" binding:"required,oneof=FullContainer LooseCargo Pallet"`
	CustomerCode    string             `bson:"customerCode" json:"customerCode" binding:"required"`
	ArrivalTime     string             `bson:"arrivalTime" json:"arrivalTime"`
	Status          ContainerStatus    `bson:"status" json:"status" binding:"required,oneof=Completed PendingUnload PendingVerification HasIssue"`
	IssueNote       string             `bson:"issueNote" json:"issueNote" binding:"required"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// Normalize rewrites the record into its stored form.
func (r *ContainerRecord) Normalize(n *datefmt.Normalizer) {
	r.Date = n.NormalizeDate(r.Date)
	r.ArrivalTime = n.NormalizeTime(r.ArrivalTime)
	r.ContainerNumber = cleanCode(r.ContainerNumber)
	r.CustomerCode = cleanCode(r.CustomerCode)
}

// Validate checks required fields and enum values.
func (r *ContainerRecord) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"date", r.Date},
		{"containerNumber", r.ContainerNumber},
		{"customerCode", r.CustomerCode},
		{"issueNote", r.IssueNote},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return err
		}
	}
	if !oneOf(r.Type, ContainerTypes) {
		return invalid("type", "`%s` is not a valid container type", r.Type)
	}
	if !oneOf(r.Status, ContainerStatuses) {
		return invalid("status", "`%s` is not a valid status", r.Status)
	}
	return nil
}

// RecordDate returns the record's date string.
func (r *ContainerRecord) RecordDate() string { return r.Date }

// RecordID returns the store-assigned id.
func (r *ContainerRecord) RecordID() primitive.ObjectID { return r.ID }

// Stamp sets the identity fields assigned by the store.
func (r *ContainerRecord) Stamp(id primitive.ObjectID, createdAt time.Time) {
	r.ID = id
	r.CreatedAt = createdAt
}

// ContainerExportHeaders are the spreadsheet columns for container exports.
var ContainerExportHeaders = []string{"Date", "Container Number", "Type", "Customer", "Arrival Time", "Status", "Issue Note"}

// ExportRow renders the record as spreadsheet cells.
func (r *ContainerRecord) ExportRow() []any {
	return []any{
		datefmt.NormalizeDate(r.Date),
		r.ContainerNumber,
		string(r.Type),
		r.CustomerCode,
		datefmt.NormalizeTime(r.ArrivalTime),
		string(r.Status),
		r.IssueNote,
	}
}

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
