// Package feed renders match records as an RSS 2.0 document.
package feed

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/martinlindenberg/ttinforss/internal/config"
	"github.com/martinlindenberg/ttinforss/internal/filter"
	"github.com/martinlindenberg/ttinforss/internal/model"
)

// ContentType is the media type of the rendered document.
const ContentType = "application/rss+xml; charset=utf-8"

// Fixed channel fields. The channel TTL is a static template value and is
// independent of the configured cache TTL.
const (
	channelTitle       = "RSS TT-MOL Spieltage"
	channelDescription = "HTML-Parser Daten"
	channelTTL         = 3600
)

// RenderError reports a record whose date is neither the postponed sentinel
// nor a parseable calendar date. The render is aborted; no partial document
// is produced.
type RenderError struct {
	Key  string
	Date string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render game %s: invalid date %q", e.Key, e.Date)
}

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Description   string `xml:"description"`
	Link          string `xml:"link"`
	LastBuildDate string `xml:"lastBuildDate"`
	PubDate       string `xml:"pubDate"`
	TTL           int    `xml:"ttl"`
	Items         []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	GUID        guid   `xml:"guid"`
	PubDate     string `xml:"pubDate"`
}

type guid struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Renderer serializes ordered match entries into the feed document.
type Renderer struct {
	cfg *config.Config
	now func() time.Time
}

// New creates a Renderer for the given configuration.
func New(cfg *config.Config) *Renderer {
	return &Renderer{cfg: cfg, now: time.Now}
}

// NewWithClock creates a Renderer with a fixed clock (useful for testing).
func NewWithClock(cfg *config.Config, now func() time.Time) *Renderer {
	return &Renderer{cfg: cfg, now: now}
}

// Render produces the RSS document for the given entries, in order. The
// channel build and publish dates are set to the render time.
func (r *Renderer) Render(entries []model.Entry) (string, error) {
	now := r.now().Format(time.RFC1123Z)

	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:         channelTitle,
			Description:   channelDescription,
			LastBuildDate: now,
			PubDate:       now,
			TTL:           channelTTL,
		},
	}

	for _, e := range entries {
		it, err := r.renderItem(e)
		if err != nil {
			return "", err
		}
		doc.Channel.Items = append(doc.Channel.Items, it)
	}

	out, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal feed: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

func (r *Renderer) renderItem(e model.Entry) (item, error) {
	m := e.Match

	var playDate time.Time
	if !m.Postponed() {
		var err error
		playDate, err = time.Parse(model.DateLayout, m.Date)
		if err != nil {
			return item{}, &RenderError{Key: e.Key, Date: m.Date}
		}
	}

	prefix := "Auswärts: "
	if filter.MatchesKeywords(m.Home, r.cfg.Keywords) {
		prefix = "Heimspiel: "
	}

	desc := "Punktspiel in der " + r.cfg.LeagueName(m.LeagueID)
	if m.Postponed() {
		desc += " VERLEGT"
	} else {
		desc += " am " + playDate.Format("02.01.2006")
	}
	if m.Result != "" {
		desc += " (Ergebnis: " + m.Result + ")"
	}

	pubDate := ""
	if !m.Postponed() {
		pubDate = playDate.Format(time.RFC1123Z)
	}

	return item{
		Title:       prefix + m.Home + " - " + m.Away,
		Description: desc,
		Link:        r.cfg.LeagueURL(m.LeagueID),
		GUID:        guid{IsPermaLink: "true", Value: e.Key},
		PubDate:     pubDate,
	}, nil
}
