package stats

import (
	"sort"
	"time"

	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/pkg/datefmt"
)

const (
	topSKULimit     = 10
	dailyTrendLimit = 30
)

// ComputeExceptionAnalysis ranks SKUs by exception count, attributes each record to a
// carrier from its tracking number and counts records per date.
func ComputeExceptionAnalysis(exceptions []models.ExceptionRecord) models.ExceptionAnalysis {
	return models.ExceptionAnalysis{
		TopSKUs:             topSKUs(exceptions, topSKULimit),
		CourierDistribution: courierDistribution(exceptions),
		TypeDistribution:    typeDistribution(exceptions),
		DailyTrend:          dailyTrend(exceptions, dailyTrendLimit),
	}
}

func topSKUs(exceptions []models.ExceptionRecord, limit int) []models.SKUCount {
	index := make(map[string]int)
	ranking := make([]models.SKUCount, 0)
	for i := range exceptions {
		sku := exceptions[i].SKU
		if sku == "" {
			continue
		}
		pos, seen := index[sku]
		if !seen {
			pos = len(ranking)
			index[sku] = pos
			ranking = append(ranking, models.SKUCount{SKU: sku})
		}
		ranking[pos].Count++
	}

	// Stable keeps first-seen order among equal counts.
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Count > ranking[j].Count })
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

func courierDistribution(exceptions []models.ExceptionRecord) []models.CourierCount {
	counts := map[models.Courier]int{}
	for i := range exceptions {
		counts[models.ClassifyCourier(exceptions[i].TrackingNumber)]++
	}

	out := make([]models.CourierCount, 0, 3)
	for _, c := range []models.Courier{models.CourierUPS, models.CourierFedEx, models.CourierUnknown} {
		out = append(out, models.CourierCount{Courier: c, Count: counts[c]})
	}
	return out
}

func typeDistribution(exceptions []models.ExceptionRecord) []models.TypeCount {
	counts := map[models.ExceptionType]int{}
	for i := range exceptions {
		counts[exceptions[i].ExceptionType]++
	}

	out := make([]models.TypeCount, 0, len(models.ExceptionTypes))
	for _, t := range models.ExceptionTypes {
		out = append(out, models.TypeCount{Type: t, Count: counts[t]})
	}
	return out
}

func dailyTrend(exceptions []models.ExceptionRecord, limit int) []models.DateCount {
	index := make(map[string]int)
	buckets := make([]models.DateCount, 0)
	for i := range exceptions {
		date := exceptions[i].Date
		pos, seen := index[date]
		if !seen {
			pos = len(buckets)
			index[date] = pos
			buckets = append(buckets, models.DateCount{Date: date})
		}
		buckets[pos].Count++
	}

	// calendar order of canonical dates does not depend on the zone
	order := &datefmt.Normalizer{Location: time.UTC}
	sort.SliceStable(buckets, func(i, j int) bool {
		a, okA := order.ParseCanonicalDate(buckets[i].Date)
		b, okB := order.ParseCanonicalDate(buckets[j].Date)
		if okA && okB {
			return a.After(b)
		}
		// unparseable dates sink to the end
		return okA && !okB
	})
	if len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}
