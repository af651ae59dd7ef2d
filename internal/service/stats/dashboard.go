package stats

import (
	"time"

	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/pkg/datefmt"
)

// ComputeWorkWeek lays out the Monday-Friday week containing anchor with the express
// record of each day. Saturday is appended only when it has a record.
func ComputeWorkWeek(volumes []models.ExpressVolumeRecord, anchor time.Time) models.WorkWeek {
	keys := &datefmt.Normalizer{Now: func() time.Time { return anchor }, Location: anchor.Location()}
	byDate := make(map[string]*models.ExpressVolumeRecord, len(volumes))
	for i := range volumes {
		key := keys.NormalizeDate(volumes[i].Date)
		if _, exists := byDate[key]; !exists {
			byDate[key] = &volumes[i]
		}
	}

	monday := mondayStart(anchor)
	days := 5
	if _, ok := byDate[monday.AddDate(0, 0, 5).Format(datefmt.CanonicalLayout)]; ok {
		days = 6
	}

	week := models.WorkWeek{
		Start: monday.Format(datefmt.CanonicalLayout),
		End:   monday.AddDate(0, 0, days-1).Format(datefmt.CanonicalLayout),
		Days:  make([]models.WorkWeekDay, 0, days),
	}
	for d := 0; d < days; d++ {
		day := monday.AddDate(0, 0, d)
		key := day.Format(datefmt.CanonicalLayout)
		row := models.WorkWeekDay{Date: key, Weekday: day.Weekday().String()}
		if rec, ok := byDate[key]; ok {
			row.Record = rec
			week.Totals.Add(rec)
		}
		week.Days = append(week.Days, row)
	}
	return week
}

// ComputeContainerSummary counts arrivals by status and type.
func ComputeContainerSummary(containers []models.ContainerRecord) models.ContainerSummary {
	summary := models.ContainerSummary{
		Total:    len(containers),
		ByStatus: make(map[models.ContainerStatus]int, len(models.ContainerStatuses)),
		ByType:   make(map[models.ContainerType]int, len(models.ContainerTypes)),
	}
	for _, s := range models.ContainerStatuses {
		summary.ByStatus[s] = 0
	}
	for _, t := range models.ContainerTypes {
		summary.ByType[t] = 0
	}
	for i := range containers {
		summary.ByStatus[containers[i].Status]++
		summary.ByType[containers[i].Type]++
	}
	return summary
}

// ComputeInventorySummary totals the surplus and shortage across discrepancy records.
func ComputeInventorySummary(items []models.InventoryExceptionRecord) models.InventorySummary {
	summary := models.InventorySummary{Records: len(items)}
	for i := range items {
		diff := items[i].Difference()
		switch {
		case diff > 0:
			summary.TotalSurplus += diff
		case diff < 0:
			summary.TotalShortage -= diff
		}
		if diff != 0 {
			summary.MismatchedItems++
		}
		summary.NetDifference += diff
	}
	return summary
}

func mondayStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	daysSinceMonday := (weekday + 6) % 7
	start := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.Location())
}
