package compare

import "testing"

func TestMerge(t *testing.T) {
	a := []Point{
		{Date: "2023-01-02", Price: 100},
		{Date: "2023-01-03", Price: 101},
		{Date: "2023-01-04", Price: 102},
	}
	b := []Point{
		{Date: "2023-01-03", Price: 50},
		{Date: "2023-01-05", Price: 51}, // absent from A, must be dropped
	}

	merged := Merge(a, b)

	if len(merged) != len(a) {
		t.Fatalf("len = %d, want %d", len(merged), len(a))
	}

	if merged[0].PriceB != nil {
		t.Errorf("row 0 PriceB = %v, want nil", *merged[0].PriceB)
	}
	if merged[1].PriceB == nil || *merged[1].PriceB != 50 {
		t.Errorf("row 1 PriceB = %v, want 50", merged[1].PriceB)
	}
	if merged[2].PriceB != nil {
		t.Errorf("row 2 PriceB = %v, want nil", *merged[2].PriceB)
	}

	for i, row := range merged {
		if row.Date != a[i].Date || row.PriceA != a[i].Price {
			t.Errorf("row %d = %+v, want A's date and price", i, row)
		}
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil, []Point{{Date: "2023-01-02", Price: 1}}); len(got) != 0 {
		t.Errorf("empty A should produce empty output, got %d rows", len(got))
	}

	merged := Merge([]Point{{Date: "2023-01-02", Price: 1}}, nil)
	if len(merged) != 1 || merged[0].PriceB != nil {
		t.Errorf("empty B should produce nil PriceB rows, got %+v", merged)
	}
}

func TestMergeDuplicateBDates(t *testing.T) {
	a := []Point{{Date: "2023-01-02", Price: 1}}
	b := []Point{
		{Date: "2023-01-02", Price: 10},
		{Date: "2023-01-02", Price: 20},
	}

	merged := Merge(a, b)
	if merged[0].PriceB == nil || *merged[0].PriceB != 20 {
		t.Errorf("duplicate B dates should be last-write-wins, got %v", merged[0].PriceB)
	}
}
