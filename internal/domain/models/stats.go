package models

import "time"

// WindowStats are the exception figures of one calendar month.
type WindowStats struct {
	Total          int     `bson:"total" json:"total"`
	NoTracking     int     `bson:"noTracking" json:"noTracking"`
	OutOfStock     int     `bson:"outOfStock" json:"outOfStock"`
	WrongShipment  int     `bson:"wrongShipment" json:"wrongShipment"`
	ShipmentVolume int     `bson:"shipmentVolume" json:"shipmentVolume"`
	ExceptionRate  float64 `bson:"exceptionRate" json:"exceptionRate"`
}

// CountOf returns the count recorded for the given type.
func (w WindowStats) CountOf(t ExceptionType) int {
	switch t {
	case ExceptionNoTracking:
		return w.NoTracking
	case ExceptionOutOfStock:
		return w.OutOfStock
	case ExceptionWrongShipment:
		return w.WrongShipment
	default:
		return 0
	}
}

// ChangeRates are month-over-month percentage changes.
type ChangeRates struct {
	Total         float64 `bson:"total" json:"total"`
	NoTracking    float64 `bson:"noTracking" json:"noTracking"`
	OutOfStock    float64 `bson:"outOfStock" json:"outOfStock"`
	WrongShipment float64 `bson:"wrongShipment" json:"wrongShipment"`
}

// StatsReport compares the current calendar month with the previous one.
type StatsReport struct {
	CurrentMonth   WindowStats `bson:"currentMonth" json:"currentMonth"`
	LastMonth      WindowStats `bson:"lastMonth" json:"lastMonth"`
	ChangeRate     ChangeRates `bson:"changeRate" json:"changeRate"`
	MonthlyAverage float64     `bson:"monthlyAverage" json:"monthlyAverage"`
}

// SKUCount is one entry of the SKU frequency ranking.
type SKUCount struct {
	SKU   string `json:"sku"`
	Count int    `json:"count"`
}

// CourierCount is the number of exceptions attributed to a carrier.
type CourierCount struct {
	Courier Courier `json:"courier"`
	Count   int     `json:"count"`
}

// TypeCount is the number of exceptions of one type.
type TypeCount struct {
	Type  ExceptionType `json:"type"`
	Count int           `json:"count"`
}

// DateCount is the number of exceptions recorded on one date.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ExceptionAnalysis breaks exceptions down by SKU, carrier, type and day.
type ExceptionAnalysis struct {
	TopSKUs             []SKUCount     `json:"topSkus"`
	CourierDistribution []CourierCount `json:"courierDistribution"`
	TypeDistribution    []TypeCount    `json:"typeDistribution"`
	DailyTrend          []DateCount    `json:"dailyTrend"`
}

// StatsSnapshot is a stored monthly report.
type StatsSnapshot struct {
	Period    string      `bson:"period" json:"period"`
	Report    StatsReport `bson:"report" json:"report"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
}

// WorkWeekDay is one row of the express volume week view.
type WorkWeekDay struct {
	Date    string               `json:"date"`
	Weekday string               `json:"weekday"`
	Record  *ExpressVolumeRecord `json:"record,omitempty"`
}

// WorkWeek aggregates express volume over a Monday-Friday week, extended to Saturday
// when Saturday has a record.
type WorkWeek struct {
	Start  string              `json:"start"`
	End    string              `json:"end"`
	Days   []WorkWeekDay       `json:"days"`
	Totals ExpressVolumeTotals `json:"totals"`
}

// ExpressVolumeTotals sums the counters of several express records.
type ExpressVolumeTotals struct {
	LegacySystemTotal int `json:"legacySystemTotal"`
	NewSystemTotal    int `json:"newSystemTotal"`
	FedexTotal        int `json:"fedexTotal"`
	UPSTotal          int `json:"upsTotal"`
	FedexA008Count    int `json:"fedexA008Count"`
	UPSA008Count      int `json:"upsA008Count"`
	BatteryPanelCount int `json:"batteryPanelCount"`
	FedexStorageCount int `json:"fedexStorageCount"`
	UPSStorageCount   int `json:"upsStorageCount"`
	Headcount         int `json:"headcount"`
	ShipmentVolume    int `json:"shipmentVolume"`
}

// Add accumulates one record into the totals.
func (t *ExpressVolumeTotals) Add(r *ExpressVolumeRecord) {
	t.LegacySystemTotal += r.LegacySystemTotal
	t.NewSystemTotal += r.NewSystemTotal
	t.FedexTotal += r.FedexTotal
	t.UPSTotal += r.UPSTotal
	t.FedexA008Count += r.FedexA008Count
	t.UPSA008Count += r.UPSA008Count
	t.BatteryPanelCount += r.BatteryPanelCount
	t.FedexStorageCount += r.FedexStorageCount
	t.UPSStorageCount += r.UPSStorageCount
	t.Headcount += r.Headcount
	t.ShipmentVolume += r.ShipmentVolume()
}

// ContainerSummary counts container arrivals.
type ContainerSummary struct {
	Total    int                     `json:"total"`
	ByStatus map[ContainerStatus]int `json:"byStatus"`
	ByType   map[ContainerType]int   `json:"byType"`
}

// InventorySummary totals inventory discrepancies.
type InventorySummary struct {
	Records         int `json:"records"`
	TotalSurplus    int `json:"totalSurplus"`
	TotalShortage   int `json:"totalShortage"`
	NetDifference   int `json:"netDifference"`
	MismatchedItems int `json:"mismatchedItems"`
}
