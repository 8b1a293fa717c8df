package match

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Status
	}{
		{name: "live", in: "live", want: StatusLive},
		{name: "finished", in: "finished", want: StatusFinished},
		{name: "upcoming", in: "upcoming", want: StatusUpcoming},
		{name: "mixed case", in: " Live ", want: StatusLive},
		{name: "unknown defaults to upcoming", in: "suspended", want: StatusUpcoming},
		{name: "empty defaults to upcoming", in: "", want: StatusUpcoming},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeStatus(tc.in); got != tc.want {
				t.Fatalf("NormalizeStatus(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseSportType(t *testing.T) {
	if got, ok := ParseSportType(" NBA "); !ok || got != SportNBA {
		t.Fatalf("unexpected parse result: %q %v", got, ok)
	}
	if _, ok := ParseSportType("cricket"); ok {
		t.Fatalf("expected cricket to be rejected")
	}
}

func TestSort_OrdersByRankThenStartTime(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	items := []Match{
		{ID: "c", Status: StatusFinished, StartTime: base},
		{ID: "a", Status: StatusUpcoming, StartTime: base.Add(2 * time.Hour)},
		{ID: "b", Status: StatusUpcoming, StartTime: base.Add(time.Hour)},
		{ID: "d", Status: StatusLive, StartTime: base.Add(3 * time.Hour)},
	}

	Sort(items)

	wantOrder := []string{"d", "b", "a", "c"}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Fatalf("position %d: got %q, want %q (full order %+v)", i, items[i].ID, want, items)
		}
	}
}

func TestSort_TiesBrokenByID(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	items := []Match{
		{ID: "b", Status: StatusLive, StartTime: base},
		{ID: "a", Status: StatusLive, StartTime: base},
	}

	Sort(items)

	if items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("expected stable id tiebreak, got %q %q", items[0].ID, items[1].ID)
	}
}

func TestHasPlayers(t *testing.T) {
	var m Match
	if m.HasPlayers() {
		t.Fatalf("empty match should not have players")
	}
	m.AwayPlayers = []PlayerStat{{ID: "p1"}}
	if !m.HasPlayers() {
		t.Fatalf("expected players present")
	}
}
