package availability

import "testing"

func TestOverlaps(t *testing.T) {
	for i, test := range []struct {
		a, b Window
		want bool
	}{
		{Window{0, 3600}, Window{1800, 5400}, true},
		{Window{0, 3600}, Window{3600, 7200}, false}, // half-open: touching isn't overlap
		{Window{0, 3600}, Window{3601, 7200}, false},
		{Window{100, 200}, Window{100, 200}, true},
		{Window{0, 100}, Window{50, 60}, true},
	} {
		if got := test.a.Overlaps(test.b); got != test.want {
			t.Errorf("case %d: %v.Overlaps(%v) = %v, want %v", i, test.a, test.b, got, test.want)
		}
		if got := test.b.Overlaps(test.a); got != test.want {
			t.Errorf("case %d (reversed): %v.Overlaps(%v) = %v, want %v", i, test.b, test.a, got, test.want)
		}
	}
}

func TestNewRejectsInverted(t *testing.T) {
	if _, err := New(10, 5); err == nil {
		t.Fatal("expected error for end before start")
	}
	if _, err := New(5, 5); err != nil {
		t.Fatalf("zero-length window should be legal: %v", err)
	}
}

func TestBusyList(t *testing.T) {
	var b BusyList
	b = b.Add(Window{0, 3600})
	b = b.Add(Window{7200, 10800})

	if !b.IsBusy(Window{1800, 5400}) {
		t.Error("expected busy due to overlap with first entry")
	}
	if b.IsBusy(Window{3600, 7200}) {
		t.Error("half-open windows touching at the boundary should not be busy")
	}
}
