// Package extract pulls match records out of raw league schedule pages.
//
// The pages have no formal grammar, so this is not an HTML parser: every
// game row is delimited by fixed literal markers and each field is located
// by splitting on the marker that precedes it. A missing date marker
// degrades that record's date to the postponed sentinel; a missing team or
// result marker has no degraded form and fails the whole page.
package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/martinlindenberg/ttinforss/internal/model"
)

// Literal markers as they appear on the source pages.
const (
	rowMarker    = `<tr class="tth3">`
	dateMarker   = `<a title="Spieldatum &auml;ndern"`
	reportMarker = `<a title="Einzelspielbericht`
	cellEnd      = `</a></td>`
	nbspMarker   = `&nbsp;`
	tagEnd       = `">`
	teamSep      = ` - `
	imgMarker    = `<img src="`
	cellOpen     = `<td>`
)

// ErrNoMarker reports that a fragment is missing a marker that has no
// degraded fallback.
var ErrNoMarker = errors.New("expected marker not found")

// Games splits a raw page into per-game fragments and extracts one match
// record per fragment. A page without any game rows yields an empty slice.
// The raw bytes are ISO-8859-1; team names are decoded to UTF-8.
func Games(raw []byte, leagueID int) ([]model.Match, error) {
	fragments := strings.Split(string(raw), rowMarker)[1:]

	matches := make([]model.Match, 0, len(fragments))
	for i, fragment := range fragments {
		home, away, err := teams(fragment)
		if err != nil {
			return nil, fmt.Errorf("league %d game %d: %w", leagueID, i+1, err)
		}
		result, err := gameResult(fragment)
		if err != nil {
			return nil, fmt.Errorf("league %d game %d: %w", leagueID, i+1, err)
		}
		matches = append(matches, model.Match{
			Date:     gameDate(fragment),
			Home:     home,
			Away:     away,
			Result:   result,
			LeagueID: leagueID,
		})
	}
	return matches, nil
}

// gameDate extracts the calendar date of a game fragment, reconstructed as
// "YYYY-MM-DD" from the page's "DD.MM.YY" form. Any deviation from the
// expected shape degrades to the postponed sentinel.
func gameDate(fragment string) string {
	_, rest, ok := strings.Cut(fragment, dateMarker)
	if !ok {
		return model.DatePostponed
	}
	cell, _, _ := strings.Cut(rest, cellEnd)

	parts := strings.Split(cell, nbspMarker)
	if len(parts) != 2 {
		return model.DatePostponed
	}

	dmy := strings.Split(strings.TrimSpace(parts[1]), ".")
	if len(dmy) != 3 {
		return model.DatePostponed
	}
	year, err := strconv.Atoi(dmy[2])
	if err != nil {
		return model.DatePostponed
	}
	// Two-digit years are assumed to be in the 2000s.
	return fmt.Sprintf("%d-%s-%s", 2000+year, dmy[1], dmy[0])
}

// teams extracts the home and away team names from the per-game report
// link, decoding them from the page's byte encoding.
func teams(fragment string) (home, away string, err error) {
	_, rest, ok := strings.Cut(fragment, reportMarker)
	if !ok {
		return "", "", fmt.Errorf("teams: %w", ErrNoMarker)
	}
	cell, _, _ := strings.Cut(rest, cellEnd)

	_, names, ok := strings.Cut(cell, tagEnd)
	if !ok {
		return "", "", fmt.Errorf("teams: link text: %w", ErrNoMarker)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(names)
	if err != nil {
		return "", "", fmt.Errorf("teams: decode: %w", err)
	}

	home, away, ok = strings.Cut(strings.TrimSpace(decoded), teamSep)
	if !ok || home == "" || away == "" {
		return "", "", fmt.Errorf("teams: separator: %w", ErrNoMarker)
	}
	return home, away, nil
}

// gameResult extracts the result text following the report link. An unplayed
// game yields an empty string.
func gameResult(fragment string) (string, error) {
	_, rest, ok := strings.Cut(fragment, reportMarker)
	if !ok {
		return "", fmt.Errorf("result: %w", ErrNoMarker)
	}
	_, after, ok := strings.Cut(rest, cellEnd)
	if !ok {
		return "", fmt.Errorf("result: cell end: %w", ErrNoMarker)
	}
	segment, _, _ := strings.Cut(after, cellEnd)

	text, _, _ := strings.Cut(segment, imgMarker)
	return strings.TrimSpace(strings.ReplaceAll(text, cellOpen, "")), nil
}
