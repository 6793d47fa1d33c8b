package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHash(t *testing.T) {
	base := Match{Date: "2015-10-04", Home: "FC Bayern", Away: "SV Nord", LeagueID: 1352}

	t.Run("deterministic", func(t *testing.T) {
		if diff := cmp.Diff(base.Hash(), base.Hash()); diff != "" {
			t.Errorf("hash not stable:\n%s", diff)
		}
	})

	t.Run("team case does not change identity", func(t *testing.T) {
		other := base
		other.Home = "fc bayern"
		other.Away = "sv nord"
		if base.Hash() != other.Hash() {
			t.Errorf("hash differs for case-only team change: %s vs %s", base.Hash(), other.Hash())
		}
	})

	t.Run("result does not change identity", func(t *testing.T) {
		other := base
		other.Result = "9:2"
		if base.Hash() != other.Hash() {
			t.Error("result changed the content hash")
		}
	})

	tests := []struct {
		name   string
		mutate func(Match) Match
	}{
		{name: "date", mutate: func(m Match) Match { m.Date = "2015-10-05"; return m }},
		{name: "home", mutate: func(m Match) Match { m.Home = "FC Bayern II"; return m }},
		{name: "away", mutate: func(m Match) Match { m.Away = "SV Ost"; return m }},
		{name: "league", mutate: func(m Match) Match { m.LeagueID = 9; return m }},
	}
	for _, tt := range tests {
		t.Run(tt.name+" changes identity", func(t *testing.T) {
			if base.Hash() == tt.mutate(base).Hash() {
				t.Error("expected different hash")
			}
		})
	}
}

func TestRecordSet(t *testing.T) {
	a := Match{Date: "2015-10-04", Home: "A", Away: "B", LeagueID: 1}
	b := Match{Date: "2015-10-11", Home: "C", Away: "D", LeagueID: 1}

	s := NewRecordSet()
	s.Add(a)
	s.Add(b)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	want := []Entry{{Key: a.Hash(), Match: a}, {Key: b.Hash(), Match: b}}
	if diff := cmp.Diff(want, s.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	// Re-adding the same game overwrites in place, keeping its position.
	played := a
	played.Result = "9:2"
	s.Add(played)

	if s.Len() != 2 {
		t.Fatalf("Len() after overwrite = %d, want 2", s.Len())
	}
	got, ok := s.Get(a.Hash())
	if !ok {
		t.Fatal("overwritten record not found")
	}
	if diff := cmp.Diff(played, got); diff != "" {
		t.Errorf("overwrite mismatch (-want +got):\n%s", diff)
	}
	if s.Entries()[0].Key != a.Hash() {
		t.Error("overwrite moved the record")
	}
}

func TestField(t *testing.T) {
	m := Match{Date: "2015-10-04", Home: "A", Away: "B", Result: "9:2", LeagueID: 7}

	tests := []struct {
		key  string
		want string
	}{
		{key: "date", want: "2015-10-04"},
		{key: "home", want: "A"},
		{key: "away", want: "B"},
		{key: "teams", want: "A - B"},
		{key: "result", want: "9:2"},
		{key: "leagueId", want: "7"},
		{key: "bogus", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, m.Field(tt.key)); diff != "" {
				t.Errorf("Field(%q) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}
