package design

import (
	"testing"

	simerr "github.com/adalundhe/alphasim/core/errors"
)

func TestDefaultGridSize(t *testing.T) {
	g := DefaultGrid()
	if g.Len() != 200 {
		t.Fatalf("DefaultGrid().Len() = %d, want 200", g.Len())
	}
	if len(g.Conditions()) != 200 {
		t.Fatalf("len(Conditions()) = %d, want 200", len(g.Conditions()))
	}
}

func TestGridEnumerationOrder(t *testing.T) {
	g := DefaultGrid()
	conds := g.Conditions()

	// Inner axis (sample size) varies fastest, outer axis (item count) slowest.
	first := Condition{ItemCount: 3, Correlation: 0.10, SampleSize: 50}
	if conds[0] != first {
		t.Errorf("conds[0] = %+v, want %+v", conds[0], first)
	}
	second := Condition{ItemCount: 3, Correlation: 0.10, SampleSize: 100}
	if conds[1] != second {
		t.Errorf("conds[1] = %+v, want %+v", conds[1], second)
	}
	sixth := Condition{ItemCount: 3, Correlation: 0.15, SampleSize: 50}
	if conds[5] != sixth {
		t.Errorf("conds[5] = %+v, want %+v", conds[5], sixth)
	}
	last := Condition{ItemCount: 12, Correlation: 0.25, SampleSize: 1000}
	if conds[199] != last {
		t.Errorf("conds[199] = %+v, want %+v", conds[199], last)
	}
}

func TestConditionAtMatchesAll(t *testing.T) {
	g := DefaultGrid()
	for idx, c := range g.All() {
		if got := g.ConditionAt(idx); got != c {
			t.Fatalf("ConditionAt(%d) = %+v, want %+v", idx, got, c)
		}
	}
}

func TestAllIsRestartable(t *testing.T) {
	g := DefaultGrid()

	count := 0
	for range g.All() {
		count++
		if count == 10 {
			break
		}
	}

	// A fresh pass after an early break starts over from the first condition.
	for idx, c := range g.All() {
		if idx != 0 {
			t.Fatalf("restarted iteration began at index %d", idx)
		}
		want := Condition{ItemCount: 3, Correlation: 0.10, SampleSize: 50}
		if c != want {
			t.Fatalf("restarted iteration began at %+v, want %+v", c, want)
		}
		break
	}
}

func TestGridSortsAxes(t *testing.T) {
	g, err := NewGrid([]int{5, 3}, []float64{0.25, 0.10}, []int{500, 50})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	first := g.ConditionAt(0)
	want := Condition{ItemCount: 3, Correlation: 0.10, SampleSize: 50}
	if first != want {
		t.Errorf("first condition = %+v, want %+v", first, want)
	}
}

func TestGridDeduplicatesAxes(t *testing.T) {
	g, err := NewGrid([]int{3, 3, 4}, []float64{0.10, 0.10}, []int{50, 50, 50})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after deduplication", g.Len())
	}
	conds := g.Conditions()
	for i := 1; i < len(conds); i++ {
		if conds[i] == conds[i-1] {
			t.Fatalf("duplicate condition %+v at index %d", conds[i], i)
		}
	}
}

func TestNewGridValidation(t *testing.T) {
	tests := []struct {
		name         string
		itemCounts   []int
		correlations []float64
		sampleSizes  []int
	}{
		{"empty item counts", nil, []float64{0.1}, []int{50}},
		{"empty correlations", []int{3}, nil, []int{50}},
		{"empty sample sizes", []int{3}, []float64{0.1}, nil},
		{"single item", []int{1}, []float64{0.1}, []int{50}},
		{"negative correlation", []int{3}, []float64{-0.2}, []int{50}},
		{"unit correlation", []int{3}, []float64{1.0}, []int{50}},
		{"tiny sample", []int{3}, []float64{0.1}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.itemCounts, tt.correlations, tt.sampleSizes)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !simerr.IsInvalidParameter(err) {
				t.Errorf("error %v is not an InvalidParameterError", err)
			}
		})
	}
}

func TestConditionKey(t *testing.T) {
	c := Condition{ItemCount: 5, Correlation: 0.25, SampleSize: 500}
	if got := c.Key(); got != "k05_r0.25_n0500" {
		t.Errorf("Key() = %q, want %q", got, "k05_r0.25_n0500")
	}
}
