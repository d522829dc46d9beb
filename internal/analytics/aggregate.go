package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/libreta-app/libreta/internal/ledger"
)

// SeriesPoint is one (label, value) pair of a chartable series.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DefaultTopProducts is how many products the ranking keeps.
const DefaultTopProducts = 5

// TopProductsByProfit groups entries by product name, sums profit per
// group and returns the top n groups by summed profit. Ties keep the
// first-encountered order, which the stable sort preserves.
func TopProductsByProfit(entries []ledger.SaleEntry, n int) []SeriesPoint {
	if n <= 0 {
		n = DefaultTopProducts
	}
	index := map[string]int{}
	var points []SeriesPoint
	for _, e := range entries {
		i, ok := index[e.ProductName]
		if !ok {
			i = len(points)
			index[e.ProductName] = i
			points = append(points, SeriesPoint{Label: e.ProductName})
		}
		points[i].Value += e.Profit
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	if len(points) > n {
		points = points[:n]
	}
	return points
}

// ProfitByWeek groups entries by the ISO year and week of their date.
// The zero-padded key format sorts lexicographically into chronological
// order.
func ProfitByWeek(entries []ledger.SaleEntry) []SeriesPoint {
	sums := map[string]float64{}
	for _, e := range entries {
		year, week := e.Date.ISOWeek()
		sums[fmt.Sprintf("%d-W%02d", year, week)] += e.Profit
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]SeriesPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, SeriesPoint{Label: k, Value: sums[k]})
	}
	return points
}

// ProfitByUser groups entries by the owning user. Names maps user IDs
// to display labels; unmapped owners fall back to "#<id>". Meaningful
// under administrator visibility; a single-user scope degenerates to
// one group.
func ProfitByUser(entries []ledger.SaleEntry, names map[int64]string) []SeriesPoint {
	index := map[int64]int{}
	var points []SeriesPoint
	for _, e := range entries {
		i, ok := index[e.UserID]
		if !ok {
			label := names[e.UserID]
			if label == "" {
				label = "#" + strconv.FormatInt(e.UserID, 10)
			}
			i = len(points)
			index[e.UserID] = i
			points = append(points, SeriesPoint{Label: label})
		}
		points[i].Value += e.Profit
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	return points
}

// AverageDailyProfit divides the summed profit by the day count of the
// explicit range when one is given. Without a range it falls back to
// the distinct dates actually present among the entries.
func AverageDailyProfit(entries []ledger.SaleEntry, rangeStart, rangeEnd *time.Time) float64 {
	var profit float64
	for _, e := range entries {
		profit += e.Profit
	}

	var days int
	if rangeStart != nil && rangeEnd != nil {
		days = int(rangeEnd.Sub(*rangeStart).Hours()/24) + 1
	} else {
		seen := map[string]struct{}{}
		for _, e := range entries {
			seen[e.Date.Format("2006-01-02")] = struct{}{}
		}
		days = len(seen)
	}
	if days < 1 {
		days = 1
	}
	return profit / float64(days)
}

// AverageTicket is the mean sale total, zero for an empty set.
func AverageTicket(entries []ledger.SaleEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var total float64
	for _, e := range entries {
		total += e.Total
	}
	return total / float64(len(entries))
}
