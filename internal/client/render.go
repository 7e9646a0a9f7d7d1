package client

import (
	"fmt"
	"io"

	"tickerboard/internal/domain/models"
)

// RenderSnapshot writes a snapshot as text, delegating card and detail
// formatting to the asset capability.
func RenderSnapshot(w io.Writer, asset Asset, snap Snapshot) {
	if snap.Err != nil {
		fmt.Fprintf(w, "error: %v\n", snap.Err)
		return
	}

	switch snap.State.Kind {
	case ViewGrid:
		fmt.Fprintf(w, "%s\n", asset.Label())
		for _, card := range snap.Cards {
			fmt.Fprintf(w, "  %s\n", asset.Card(card))
		}
	case ViewDetail:
		if snap.State.CompareSymbol != "" {
			renderComparison(w, snap)
			return
		}
		fmt.Fprintf(w, "%s\n", asset.Detail(snap.Detail, snap.History))
	}
}

func renderComparison(w io.Writer, snap Snapshot) {
	fmt.Fprintf(w, "Comparing %s vs %s\n", snap.State.Symbol, snap.State.CompareSymbol)
	for _, row := range snap.Comparison {
		if row.PriceB != nil {
			fmt.Fprintf(w, "  %s  %9.2f  %9.2f\n", row.Date, row.PriceA, *row.PriceB)
		} else {
			fmt.Fprintf(w, "  %s  %9.2f          -\n", row.Date, row.PriceA)
		}
	}
}

// RenderHeadlines writes a headline list as text.
func RenderHeadlines(w io.Writer, records []models.HeadlineRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No headline found")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(w, "%s\n  %s\n  %s (%s)\n", rec.Headline, rec.Description, rec.Timestamp, rec.Source)
	}
}
