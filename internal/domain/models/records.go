package models

// Collection names in the document store.
const (
	CollectionStocks = "stocks"
	CollectionETFs   = "etfs"
)

// RawPriceDocument is a price document exactly as stored: one CSV row per
// trading day, every value still a string, the symbol denormalized into the
// source file name. Only the normalizer should ever touch this shape.
type RawPriceDocument struct {
	FileName string `json:"fileName"`
	Date     string `json:"Date"`
	Open     string `json:"Open"`
	High     string `json:"High"`
	Low      string `json:"Low"`
	Close    string `json:"Close"`
	AdjClose string `json:"Adj Close"`
	Volume   string `json:"Volume"`
}

// RawHeadlineDocument is a headline document as stored.
type RawHeadlineDocument struct {
	Headlines   string `json:"Headlines"`
	Time        string `json:"Time"`
	Description string `json:"Description"`
	FileName    string `json:"fileName"`
}

// PriceRecord is one trading-day observation for one instrument.
type PriceRecord struct {
	Symbol   string  `json:"Symbol"`
	Date     string  `json:"Date"`
	Open     float64 `json:"Open"`
	High     float64 `json:"High"`
	Low      float64 `json:"Low"`
	Close    float64 `json:"Close"`
	AdjClose float64 `json:"AdjClose"`
	Volume   int64   `json:"Volume"`
}

// LatestPriceView is the derived card shown in the grid: the most recent
// close for a symbol together with the previous close and the change.
type LatestPriceView struct {
	Symbol        string  `json:"symbol"`
	Date          string  `json:"date"`
	Close         float64 `json:"close"`
	PreviousClose float64 `json:"previousClose"`
	ChangeAbs     float64 `json:"changeAbs"`
	ChangePct     float64 `json:"changePct"`
}

// NewLatestPriceView derives the card values from a latest record and a
// previous close. When only one trading day is known the caller passes the
// record's own close as previousClose and the change is zero.
func NewLatestPriceView(latest PriceRecord, previousClose float64) LatestPriceView {
	view := LatestPriceView{
		Symbol:        latest.Symbol,
		Date:          latest.Date,
		Close:         latest.Close,
		PreviousClose: previousClose,
		ChangeAbs:     latest.Close - previousClose,
	}
	if previousClose != 0 {
		view.ChangePct = view.ChangeAbs / previousClose * 100
	}
	return view
}

// HeadlineRecord is one news item.
type HeadlineRecord struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Source      string `json:"source"`
}

// HeadlineSourceAll is the wildcard source selector. It bypasses source
// filtering and is never matched as a literal value.
const HeadlineSourceAll = "all"

// HeadlineSources are the wire sources present in the seed data.
var HeadlineSources = []string{
	"cnbc_headlines",
	"guardian_headlines",
	"reuters_headlines",
}

// ValidHeadlineSource reports whether source names a known wire source or
// the wildcard.
func ValidHeadlineSource(source string) bool {
	if source == HeadlineSourceAll {
		return true
	}
	for _, s := range HeadlineSources {
		if s == source {
			return true
		}
	}
	return false
}
