package client

import (
	"fmt"
	"strings"

	"tickerboard/internal/domain/models"
)

// Asset is the capability interface implemented once per asset type. It
// carries the REST base path plus the card and detail renderings, so the
// one controller and renderer serve both stocks and ETFs.
type Asset interface {
	// Path is the REST base path, e.g. "/api/stocks".
	Path() string
	// Label names the asset type in headings.
	Label() string
	// Card renders one grid card.
	Card(view models.LatestPriceView) string
	// Detail renders the detail header for a symbol.
	Detail(view models.LatestPriceView, history []models.PriceRecord) string
}

// Stocks is the stock asset type.
var Stocks Asset = stockAsset{}

// ETFs is the ETF asset type.
var ETFs Asset = etfAsset{}

func changeArrow(view models.LatestPriceView) string {
	if view.ChangeAbs < 0 {
		return "▼"
	}
	return "▲"
}

func renderCard(kind string, view models.LatestPriceView) string {
	return fmt.Sprintf("%-5s  %9.2f  %s %+.2f (%+.2f%%)  [%s]",
		view.Symbol, view.Close, changeArrow(view), view.ChangeAbs, view.ChangePct, kind)
}

func renderDetail(kind string, view models.LatestPriceView, history []models.PriceRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%s)\n", kind, view.Symbol, view.Date)
	fmt.Fprintf(&sb, "close %.2f  prev %.2f  change %+.2f (%+.2f%%)\n",
		view.Close, view.PreviousClose, view.ChangeAbs, view.ChangePct)
	fmt.Fprintf(&sb, "%d trading days on record", len(history))
	return sb.String()
}

type stockAsset struct{}

func (stockAsset) Path() string  { return "/api/stocks" }
func (stockAsset) Label() string { return "Stocks" }

func (stockAsset) Card(view models.LatestPriceView) string {
	return renderCard("stock", view)
}

func (stockAsset) Detail(view models.LatestPriceView, history []models.PriceRecord) string {
	return renderDetail("Stock", view, history)
}

type etfAsset struct{}

func (etfAsset) Path() string  { return "/api/etfs" }
func (etfAsset) Label() string { return "ETFs" }

func (etfAsset) Card(view models.LatestPriceView) string {
	return renderCard("etf", view)
}

func (etfAsset) Detail(view models.LatestPriceView, history []models.PriceRecord) string {
	return renderDetail("ETF", view, history)
}
