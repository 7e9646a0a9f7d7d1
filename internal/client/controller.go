package client

import (
	"context"
	"log/slog"
	"sync"

	"tickerboard/internal/concurrency"
	"tickerboard/internal/domain/compare"
	"tickerboard/internal/domain/models"
)

// ViewKind identifies the current top-level view.
type ViewKind int

const (
	// ViewGrid is the card grid, the initial view.
	ViewGrid ViewKind = iota
	// ViewDetail shows one symbol; a compare sub-selection toggles the
	// overlay without leaving the detail view.
	ViewDetail
)

// ViewState is the transient navigation state. It is never persisted; all
// data is re-fetched on entry to a state.
type ViewState struct {
	Kind          ViewKind
	Symbol        string
	CompareSymbol string
}

// Snapshot is everything the renderer needs for the current state. Exactly
// the fields for the active view are populated.
type Snapshot struct {
	State      ViewState
	Cards      []models.LatestPriceView
	Detail     models.LatestPriceView
	History    []models.PriceRecord
	Comparison []compare.MergedPoint
	Err        error
}

// Controller is the grid → detail → compare state machine for one asset
// type. Every state entry increments a generation counter and fetches
// fresh data; a fetch only applies if its generation is still current, so
// the most recent selection always wins over slower in-flight requests.
type Controller struct {
	api     *APIClient
	asset   Asset
	workers int
	limit   int
	logger  *slog.Logger

	// OnUpdate is invoked with each applied snapshot. Discarded (stale)
	// fetches never reach it.
	OnUpdate func(Snapshot)

	mu       sync.Mutex
	gen      uint64
	state    ViewState
	snapshot Snapshot
}

// NewController creates a controller for one asset type. workers bounds
// the grid prev-close fan-out; limit caps the number of grid cards.
func NewController(api *APIClient, asset Asset, workers, limit int, logger *slog.Logger) *Controller {
	return &Controller{
		api:     api,
		asset:   asset,
		workers: workers,
		limit:   limit,
		logger:  logger,
	}
}

// Asset returns the controller's asset type.
func (c *Controller) Asset() Asset { return c.asset }

// State returns the current navigation state.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the last applied snapshot.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// enter records a new state and returns its generation.
func (c *Controller) enter(state ViewState) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = state
	return c.gen
}

// apply installs a snapshot unless the generation has moved on, in which
// case the result is discarded.
func (c *Controller) apply(gen uint64, snap Snapshot) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("discarding stale fetch", "gen", gen)
		return
	}
	snap.State = c.state
	c.snapshot = snap
	onUpdate := c.OnUpdate
	c.mu.Unlock()

	if onUpdate != nil {
		onUpdate(snap)
	}
}

// ShowGrid enters the grid view and loads the cards.
func (c *Controller) ShowGrid(ctx context.Context) {
	gen := c.enter(ViewState{Kind: ViewGrid})
	c.apply(gen, c.loadGrid(ctx))
}

// Back returns from detail to the grid.
func (c *Controller) Back(ctx context.Context) {
	c.ShowGrid(ctx)
}

// SelectSymbol enters the detail view for a symbol.
func (c *Controller) SelectSymbol(ctx context.Context, symbol string) {
	gen := c.enter(ViewState{Kind: ViewDetail, Symbol: symbol})
	c.apply(gen, c.loadDetail(ctx, symbol))
}

// SetCompare overlays a second symbol on the detail view.
func (c *Controller) SetCompare(ctx context.Context, compareSymbol string) {
	c.mu.Lock()
	if c.state.Kind != ViewDetail {
		c.mu.Unlock()
		return
	}
	symbol := c.state.Symbol
	c.mu.Unlock()

	gen := c.enter(ViewState{Kind: ViewDetail, Symbol: symbol, CompareSymbol: compareSymbol})
	c.apply(gen, c.loadCompare(ctx, symbol, compareSymbol))
}

// ClearCompare drops the overlay and returns to the single-series detail
// view without leaving detail.
func (c *Controller) ClearCompare(ctx context.Context) {
	c.mu.Lock()
	if c.state.Kind != ViewDetail || c.state.CompareSymbol == "" {
		c.mu.Unlock()
		return
	}
	symbol := c.state.Symbol
	c.mu.Unlock()

	c.SelectSymbol(ctx, symbol)
}

// loadGrid fetches one latest record per symbol, then fans out the
// prev-close lookups over a bounded worker pool. A failed lookup degrades
// to the record's own close for that card only.
func (c *Controller) loadGrid(ctx context.Context) Snapshot {
	records, err := c.api.LatestPerSymbol(ctx, c.asset, c.limit)
	if err != nil {
		return Snapshot{Err: err}
	}

	inputCh := make(chan models.PriceRecord, len(records))
	for _, rec := range records {
		inputCh <- rec
	}
	close(inputCh)

	outputCh := make(chan models.LatestPriceView, len(records))
	pool := concurrency.NewWorkerPool(c.workers, c.logger)
	pool.Start(ctx, inputCh, outputCh, c.fetchCard)

	bySymbol := make(map[string]models.LatestPriceView, len(records))
	for card := range outputCh {
		bySymbol[card.Symbol] = card
	}

	// Keep the server's symbol ordering regardless of completion order.
	cards := make([]models.LatestPriceView, 0, len(records))
	for _, rec := range records {
		if card, ok := bySymbol[rec.Symbol]; ok {
			cards = append(cards, card)
		}
	}
	return Snapshot{Cards: cards}
}

func (c *Controller) fetchCard(ctx context.Context, rec models.PriceRecord) models.LatestPriceView {
	prev, err := c.api.PreviousClose(ctx, c.asset, rec.Symbol)
	if err != nil {
		c.logger.Warn("prev-close lookup failed, using own close",
			"symbol", rec.Symbol, "error", err)
		prev = rec.Close
	}
	return models.NewLatestPriceView(rec, prev)
}

// loadDetail fetches the full history and the latest record, deriving the
// previous close from the history when it holds more than one day.
func (c *Controller) loadDetail(ctx context.Context, symbol string) Snapshot {
	history, err := c.api.History(ctx, c.asset, symbol)
	if err != nil {
		return Snapshot{Err: err}
	}
	latest, err := c.api.Latest(ctx, c.asset, symbol)
	if err != nil {
		return Snapshot{Err: err}
	}

	prev := latest.Close
	if len(history) > 1 {
		prev = history[len(history)-2].Close
	}

	return Snapshot{
		Detail:  models.NewLatestPriceView(latest, prev),
		History: history,
	}
}

// loadCompare fetches both histories in parallel and left-joins B onto
// A's dates.
func (c *Controller) loadCompare(ctx context.Context, symbolA, symbolB string) Snapshot {
	var (
		wg         sync.WaitGroup
		historyA   []models.PriceRecord
		historyB   []models.PriceRecord
		errA, errB error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		historyA, errA = c.api.History(ctx, c.asset, symbolA)
	}()
	go func() {
		defer wg.Done()
		historyB, errB = c.api.History(ctx, c.asset, symbolB)
	}()
	wg.Wait()

	if errA != nil {
		return Snapshot{Err: errA}
	}
	if errB != nil {
		return Snapshot{Err: errB}
	}

	return Snapshot{
		History:    historyA,
		Comparison: compare.Merge(toPoints(historyA), toPoints(historyB)),
	}
}

func toPoints(records []models.PriceRecord) []compare.Point {
	points := make([]compare.Point, 0, len(records))
	for _, rec := range records {
		points = append(points, compare.Point{Date: rec.Date, Price: rec.Close})
	}
	return points
}
