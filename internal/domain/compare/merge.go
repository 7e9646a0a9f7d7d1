// Package compare joins two independent price series by date key for
// overlay charting.
package compare

// Point is one dated price in a single series.
type Point struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// MergedPoint is one row of a joined comparison series. PriceB is nil when
// series B has no observation for the date.
type MergedPoint struct {
	Date   string   `json:"date"`
	PriceA float64  `json:"priceA"`
	PriceB *float64 `json:"priceB"`
}

// Merge left-joins seriesB onto seriesA's date keys. The output is driven
// entirely by seriesA: one row per A point in A's order, and B dates absent
// from A are dropped. A is assumed already ordered by the caller; Merge
// does not re-sort. Duplicate dates in B are last-write-wins.
func Merge(seriesA, seriesB []Point) []MergedPoint {
	bByDate := make(map[string]float64, len(seriesB))
	for _, p := range seriesB {
		bByDate[p.Date] = p.Price
	}

	merged := make([]MergedPoint, 0, len(seriesA))
	for _, p := range seriesA {
		row := MergedPoint{Date: p.Date, PriceA: p.Price}
		if priceB, ok := bByDate[p.Date]; ok {
			row.PriceB = &priceB
		}
		merged = append(merged, row)
	}
	return merged
}
