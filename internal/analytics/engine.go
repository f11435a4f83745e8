// Package analytics aggregates sale history into dashboard figures. Every
// call is a full re-scan of the records it is given; nothing is retained
// between calls.
package analytics

import (
	"sort"

	"lickees/internal/domain"
)

const TopItemsLimit = 5

// Predicate selects the sale records a dashboard covers.
type Predicate func(domain.SaleRecord) bool

// Compute filters records with include and aggregates the matches. The input
// order is preserved in MatchingRecords.
func Compute(records []domain.SaleRecord, include Predicate) domain.AnalyticsResult {
	result := domain.AnalyticsResult{
		TopItems:        make([]domain.ItemUnits, 0, TopItemsLimit),
		MatchingRecords: make([]domain.SaleRecord, 0),
	}

	units := map[string]int{}
	firstSeen := make([]string, 0)

	for _, record := range records {
		if include != nil && !include(record) {
			continue
		}
		result.MatchingRecords = append(result.MatchingRecords, record)
		result.TransactionCount++
		result.TotalRevenue += record.Total

		switch record.PaymentMethod {
		case domain.PaymentCash:
			result.RevenueByPayment.Cash += record.Total
		case domain.PaymentDigital:
			result.RevenueByPayment.Digital += record.Total
		}

		for _, item := range record.Items {
			result.TotalUnitsSold += item.Quantity
			if _, ok := units[item.Name]; !ok {
				firstSeen = append(firstSeen, item.Name)
			}
			units[item.Name] += item.Quantity
		}
	}

	ranked := make([]domain.ItemUnits, 0, len(firstSeen))
	for _, name := range firstSeen {
		ranked = append(ranked, domain.ItemUnits{Name: name, Units: units[name]})
	}
	// stable: ties keep first-encountered order
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Units > ranked[j].Units })
	if len(ranked) > TopItemsLimit {
		ranked = ranked[:TopItemsLimit]
	}
	result.TopItems = append(result.TopItems, ranked...)

	return result
}

// Shares is the cash/digital split of revenue in percent, rounded to the
// nearest whole number.
type Shares struct {
	Cash    int `json:"cash"`
	Digital int `json:"digital_transfer"`
}

// PaymentShares derives percentages from a result. Zero revenue yields zero
// shares.
func PaymentShares(result domain.AnalyticsResult) Shares {
	if result.TotalRevenue == 0 {
		return Shares{}
	}
	return Shares{
		Cash:    percent(result.RevenueByPayment.Cash, result.TotalRevenue),
		Digital: percent(result.RevenueByPayment.Digital, result.TotalRevenue),
	}
}

func percent(part, whole int) int {
	return (part*100 + whole/2) / whole
}

// AverageTicket is revenue per transaction, 0 when there are none.
func AverageTicket(result domain.AnalyticsResult) int {
	if result.TransactionCount == 0 {
		return 0
	}
	return result.TotalRevenue / result.TransactionCount
}

// TopItemShare returns units as a percentage of the best seller, for bar
// widths. It is 0 when the top list is empty.
func TopItemShare(result domain.AnalyticsResult, units int) int {
	if len(result.TopItems) == 0 || result.TopItems[0].Units == 0 {
		return 0
	}
	return percent(units, result.TopItems[0].Units)
}
