package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"tickerboard/internal/domain/models"
)

func headlineDoc(source, headline, desc, ts string) models.RawHeadlineDocument {
	return models.RawHeadlineDocument{
		Headlines:   headline,
		Description: desc,
		Time:        ts,
		FileName:    source,
	}
}

func newHeadlineUseCase(store *fakeStorage) *HeadlineUseCase {
	return NewHeadlineUseCase(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHeadlineList(t *testing.T) {
	store := &fakeStorage{headlines: []models.RawHeadlineDocument{
		headlineDoc("cnbc_headlines", "Tesla rallies", "Delivery beat.", "7:33 PM ET Fri, 17 July 2020"),
		headlineDoc("reuters_headlines", "Oil slides", "Supply glut.", "9:00 AM ET Mon, 3 June 2019"),
		headlineDoc("guardian_headlines", "Markets mixed", "Tesla mentioned here.", "Fri, 17 July 2020"),
	}}
	uc := newHeadlineUseCase(store)
	ctx := context.Background()

	recs, err := uc.List(ctx, HeadlineFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("got %d headlines, want 3", len(recs))
	}

	recs, err = uc.List(ctx, HeadlineFilter{Source: "cnbc_headlines"})
	if err != nil {
		t.Fatalf("List source: %v", err)
	}
	if len(recs) != 1 || recs[0].Source != "cnbc_headlines" {
		t.Errorf("source filter = %+v", recs)
	}

	recs, err = uc.List(ctx, HeadlineFilter{Source: models.HeadlineSourceAll})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf(`"all" should bypass the filter, got %d`, len(recs))
	}

	// Text matches the description even when the headline does not.
	recs, err = uc.List(ctx, HeadlineFilter{Text: "tesla"})
	if err != nil {
		t.Fatalf("List text: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("text filter got %d, want 2", len(recs))
	}

	recs, err = uc.List(ctx, HeadlineFilter{Year: "2019"})
	if err != nil {
		t.Fatalf("List year: %v", err)
	}
	if len(recs) != 1 || recs[0].Headline != "Oil slides" {
		t.Errorf("year filter = %+v", recs)
	}
}

func TestHeadlineListValidation(t *testing.T) {
	uc := newHeadlineUseCase(&fakeStorage{})
	ctx := context.Background()

	if _, err := uc.List(ctx, HeadlineFilter{Source: "bloomberg"}); !models.IsInput(err) {
		t.Errorf("unknown source: err = %v, want InputError", err)
	}
	if _, err := uc.List(ctx, HeadlineFilter{Year: "20"}); !models.IsInput(err) {
		t.Errorf("short year: err = %v, want InputError", err)
	}
}

func TestHeadlineListLimit(t *testing.T) {
	store := &fakeStorage{}
	for i := 0; i < HeadlineLimitMax+50; i++ {
		store.headlines = append(store.headlines,
			headlineDoc("cnbc_headlines", fmt.Sprintf("headline %d", i), "", "2020"))
	}
	uc := newHeadlineUseCase(store)
	ctx := context.Background()

	recs, err := uc.List(ctx, HeadlineFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != HeadlineLimitMax {
		t.Errorf("default limit = %d, want %d", len(recs), HeadlineLimitMax)
	}

	recs, err = uc.List(ctx, HeadlineFilter{Limit: 5})
	if err != nil {
		t.Fatalf("List limit: %v", err)
	}
	if len(recs) != 5 {
		t.Errorf("limit 5 returned %d", len(recs))
	}

	// Limit applies after filtering when predicates are present.
	recs, err = uc.List(ctx, HeadlineFilter{Year: "2020", Limit: 7})
	if err != nil {
		t.Fatalf("List filtered limit: %v", err)
	}
	if len(recs) != 7 {
		t.Errorf("filtered limit returned %d, want 7", len(recs))
	}
}
