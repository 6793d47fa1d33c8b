// Package filter implements the record selection and ordering stages.
//
// The stages are pure: each takes records in and returns records out, and
// the orchestrator composes them in a fixed order (keywords, start from
// today, order by).
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/martinlindenberg/ttinforss/internal/model"
)

// OrderNone disables the ordering stage.
const OrderNone = "none"

// ByKeywords keeps the matches in which at least one keyword occurs as a
// case-insensitive substring of either team name. The result is keyed by
// content hash, which de-duplicates games that appear more than once.
func ByKeywords(matches []model.Match, keywords []string) *model.RecordSet {
	set := model.NewRecordSet()
	for _, m := range matches {
		if MatchesKeywords(m.Home, keywords) || MatchesKeywords(m.Away, keywords) {
			set.Add(m)
		}
	}
	return set
}

// MatchesKeywords reports whether any keyword is a case-insensitive
// substring of name.
func MatchesKeywords(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// FromToday drops games already played or playing today: only records whose
// date is strictly after the current day survive. Postponed records are
// always kept, as are records whose date does not parse (the renderer is
// where an invalid date becomes an error). When enabled is false the set
// passes through unchanged.
func FromToday(set *model.RecordSet, enabled bool, now time.Time) *model.RecordSet {
	if !enabled {
		return set
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := model.NewRecordSet()
	for _, e := range set.Entries() {
		if e.Match.Postponed() {
			out.Add(e.Match)
			continue
		}
		playDate, err := time.ParseInLocation(model.DateLayout, e.Match.Date, now.Location())
		if err != nil || playDate.After(today) {
			out.Add(e.Match)
		}
	}
	return out
}

// OrderBy returns the set's entries grouped by the string value of the named
// record field, groups in lexicographic key order, each group keeping its
// insertion order. The comparison is plain byte order even for the date
// field. With key OrderNone the insertion order is returned untouched.
func OrderBy(set *model.RecordSet, key string) []model.Entry {
	entries := set.Entries()
	if key == OrderNone {
		return entries
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Match.Field(key) < entries[j].Match.Field(key)
	})
	return entries
}
