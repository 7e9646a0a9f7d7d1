package headline

import (
	"testing"

	"tickerboard/internal/domain/models"
)

func TestByYear(t *testing.T) {
	rec := models.HeadlineRecord{Timestamp: "7:33 PM ET Fri, 17 July 2020"}

	if !ByYear("2020")(rec) {
		t.Error("ByYear(2020) should match")
	}
	if ByYear("2019")(rec) {
		t.Error("ByYear(2019) should not match")
	}

	// First 4-digit run wins: "2019" appears before "2020" here.
	twoYears := models.HeadlineRecord{Timestamp: "filed 2019, published 2020"}
	if !ByYear("2019")(twoYears) {
		t.Error("first 4-digit run should be the extracted year")
	}
	if ByYear("2020")(twoYears) {
		t.Error("later 4-digit runs should be ignored")
	}

	// No 4-digit run: excluded, never an error.
	if ByYear("2020")(models.HeadlineRecord{Timestamp: "no year here"}) {
		t.Error("timestamp without a 4-digit run should be excluded")
	}
}

func TestValidYear(t *testing.T) {
	for year, want := range map[string]bool{
		"2020":  true,
		"0001":  true,
		"202":   false,
		"20201": false,
		"20a0":  false,
		"":      false,
	} {
		if got := ValidYear(year); got != want {
			t.Errorf("ValidYear(%q) = %v, want %v", year, got, want)
		}
	}
}

func TestByText(t *testing.T) {
	rec := models.HeadlineRecord{
		Headline:    "Markets close mixed",
		Description: "Tesla led gains among automakers.",
	}

	if !ByText("tesla")(rec) {
		t.Error("ByText should match description case-insensitively")
	}
	if !ByText("CLOSE")(rec) {
		t.Error("ByText should match headline case-insensitively")
	}
	if ByText("bitcoin")(rec) {
		t.Error("ByText should reject headlines matching neither field")
	}
	if !ByText("")(rec) {
		t.Error("empty query is the identity filter")
	}
}

func TestBySource(t *testing.T) {
	rec := models.HeadlineRecord{Source: "cnbc_headlines"}

	if !BySource("cnbc_headlines")(rec) {
		t.Error("exact source should match")
	}
	if BySource("reuters_headlines")(rec) {
		t.Error("other source should not match")
	}
	if !BySource(models.HeadlineSourceAll)(rec) {
		t.Error(`"all" is a wildcard, not a literal`)
	}
	if !BySource("")(rec) {
		t.Error("empty source bypasses the filter")
	}
}

func TestApply(t *testing.T) {
	records := []models.HeadlineRecord{
		{Headline: "Tesla rallies", Timestamp: "Fri, 17 July 2020", Source: "cnbc_headlines"},
		{Headline: "Tesla dips", Timestamp: "Mon, 3 June 2019", Source: "cnbc_headlines"},
		{Headline: "Oil slides", Timestamp: "Fri, 17 July 2020", Source: "reuters_headlines"},
	}

	got := Apply(records, ByYear("2020"), ByText("tesla"), BySource("cnbc_headlines"))
	if len(got) != 1 || got[0].Headline != "Tesla rallies" {
		t.Errorf("Apply = %+v, want the single 2020 cnbc Tesla headline", got)
	}

	if got := Apply(records); len(got) != len(records) {
		t.Errorf("Apply with no predicates should keep everything, got %d", len(got))
	}
}
