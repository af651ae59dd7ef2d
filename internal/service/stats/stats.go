// Package stats computes the exception and volume figures shown on the dashboard.
package stats

import (
	"math"
	"time"

	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/pkg/datefmt"
)

// noPreviousChange is reported as the change rate when the previous month is zero and
// the current one is not.
const noPreviousChange = 100

type window struct {
	start time.Time
	end   time.Time
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.start) && !t.After(w.end)
}

func monthWindow(year int, month time.Month, loc *time.Location) window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, month+1, 0, 23, 59, 59, 0, loc)
	return window{start: start, end: end}
}

// ComputeExceptionStats compares the calendar month containing now with the month
// before it. Records whose date is not MM/DD/YYYY are left out of both months.
func ComputeExceptionStats(exceptions []models.ExceptionRecord, volumes []models.ExpressVolumeRecord, now time.Time) models.StatsReport {
	loc := now.Location()
	parser := &datefmt.Normalizer{Location: loc}

	current := monthWindow(now.Year(), now.Month(), loc)
	previous := monthWindow(now.Year(), now.Month()-1, loc)

	var cur, prev models.WindowStats
	for i := range exceptions {
		date, ok := parser.ParseCanonicalDate(exceptions[i].Date)
		if !ok {
			continue
		}
		switch {
		case current.contains(date):
			countException(&cur, exceptions[i].ExceptionType)
		case previous.contains(date):
			countException(&prev, exceptions[i].ExceptionType)
		}
	}

	for i := range volumes {
		date, ok := parser.ParseCanonicalDate(volumes[i].Date)
		if !ok {
			continue
		}
		switch {
		case current.contains(date):
			cur.ShipmentVolume += volumes[i].ShipmentVolume()
		case previous.contains(date):
			prev.ShipmentVolume += volumes[i].ShipmentVolume()
		}
	}

	cur.ExceptionRate = exceptionRate(cur.Total, cur.ShipmentVolume)
	prev.ExceptionRate = exceptionRate(prev.Total, prev.ShipmentVolume)

	return models.StatsReport{
		CurrentMonth: cur,
		LastMonth:    prev,
		ChangeRate: models.ChangeRates{
			Total:         changeRate(cur.Total, prev.Total),
			NoTracking:    typeChangeRate(cur, prev, models.ExceptionNoTracking),
			OutOfStock:    typeChangeRate(cur, prev, models.ExceptionOutOfStock),
			WrongShipment: typeChangeRate(cur, prev, models.ExceptionWrongShipment),
		},
		MonthlyAverage: monthlyAverage(exceptions, parser),
	}
}

func countException(w *models.WindowStats, t models.ExceptionType) {
	w.Total++
	switch t {
	case models.ExceptionNoTracking:
		w.NoTracking++
	case models.ExceptionOutOfStock:
		w.OutOfStock++
	case models.ExceptionWrongShipment:
		w.WrongShipment++
	}
}

func typeChangeRate(cur, prev models.WindowStats, t models.ExceptionType) float64 {
	return changeRate(cur.CountOf(t), prev.CountOf(t))
}

// changeRate is 100 when only the previous month is zero. Two empty months give 0, so an
// empty window always yields an all-zero report.
func changeRate(current, previous int) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return noPreviousChange
	}
	return roundOne(float64(current-previous) / float64(previous) * 100)
}

func exceptionRate(count, volume int) float64 {
	if volume <= 0 {
		return 0
	}
	return roundOne(float64(count) / float64(volume) * 100)
}

// monthlyAverage spreads every exception over the calendar months between the oldest
// and newest parseable dates.
func monthlyAverage(exceptions []models.ExceptionRecord, parser *datefmt.Normalizer) float64 {
	var minDate, maxDate time.Time
	found := false
	for i := range exceptions {
		date, ok := parser.ParseCanonicalDate(exceptions[i].Date)
		if !ok {
			continue
		}
		if !found || date.Before(minDate) {
			minDate = date
		}
		if !found || date.After(maxDate) {
			maxDate = date
		}
		found = true
	}
	if !found {
		return 0
	}

	span := (maxDate.Year()-minDate.Year())*12 + int(maxDate.Month()-minDate.Month()) + 1
	if span <= 1 {
		return float64(len(exceptions))
	}
	return roundOne(float64(len(exceptions)) / float64(span))
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
