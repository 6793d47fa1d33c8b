// Package model defines the domain types used across the application.
package model

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"fmt"
	"strings"
)

// DatePostponed is the sentinel stored in Match.Date when the source page
// carries no usable date for a game. The literal matches the marker used
// on the league pages.
const DatePostponed = "verlegt"

// DateLayout is the calendar form of Match.Date.
const DateLayout = "2006-01-02"

// Match represents one scheduled game extracted from a league page.
// Date is either a calendar date in "YYYY-MM-DD" form or DatePostponed.
// Result is empty while the game has not been played.
type Match struct {
	Date     string
	Home     string
	Away     string
	Result   string
	LeagueID int
}

// Postponed reports whether the match carries the postponed sentinel
// instead of a calendar date.
func (m Match) Postponed() bool {
	return m.Date == DatePostponed
}

// Hash returns the content fingerprint identifying this game: an md5 hex
// digest of the lowercased team pair, the date string and the league id.
// Two records with the same hash are the same logical game.
func (m Match) Hash() string {
	sum := md5.Sum([]byte(strings.ToLower(m.Home) + strings.ToLower(m.Away) + m.Date + fmt.Sprint(m.LeagueID))) //nolint:gosec
	return fmt.Sprintf("%x", sum)
}

// Field returns the record's value for the named field as a string, used by
// the ordering stage. Unknown names yield an empty string, which sorts all
// records into a single group.
func (m Match) Field(name string) string {
	switch name {
	case "date":
		return m.Date
	case "home":
		return m.Home
	case "away":
		return m.Away
	case "teams":
		return m.Home + " - " + m.Away
	case "result":
		return m.Result
	case "leagueId":
		return fmt.Sprint(m.LeagueID)
	}
	return ""
}

// Entry pairs a content hash with its match.
type Entry struct {
	Key   string
	Match Match
}

// RecordSet is a hash-keyed collection of matches that remembers insertion
// order. Adding a record whose hash is already present overwrites the stored
// record without changing its position.
type RecordSet struct {
	keys    []string
	records map[string]Match
}

// NewRecordSet returns an empty RecordSet.
func NewRecordSet() *RecordSet {
	return &RecordSet{records: make(map[string]Match)}
}

// Add inserts m under its content hash.
func (s *RecordSet) Add(m Match) {
	key := m.Hash()
	if _, ok := s.records[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.records[key] = m
}

// Len returns the number of distinct games in the set.
func (s *RecordSet) Len() int {
	return len(s.keys)
}

// Get returns the record stored under key.
func (s *RecordSet) Get(key string) (Match, bool) {
	m, ok := s.records[key]
	return m, ok
}

// Entries returns the set's (hash, match) pairs in insertion order.
func (s *RecordSet) Entries() []Entry {
	out := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Entry{Key: k, Match: s.records[k]})
	}
	return out
}
