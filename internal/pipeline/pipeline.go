// Package pipeline wires the cache, fetcher, extractor, filters and
// renderer into the end-to-end feed generation run.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/martinlindenberg/ttinforss/internal/cache"
	"github.com/martinlindenberg/ttinforss/internal/config"
	"github.com/martinlindenberg/ttinforss/internal/extract"
	"github.com/martinlindenberg/ttinforss/internal/feed"
	"github.com/martinlindenberg/ttinforss/internal/fetcher"
	"github.com/martinlindenberg/ttinforss/internal/filter"
	"github.com/martinlindenberg/ttinforss/internal/model"
)

// Pipeline produces the feed document: cache check, per-league fetch and
// extract, filter chain, render, conditional cache write.
type Pipeline struct {
	cfg     *config.Config
	store   cache.Store
	fetcher *fetcher.Fetcher
	render  *feed.Renderer
	log     *slog.Logger
	now     func() time.Time
}

// New creates a Pipeline using the given HTTP client for page fetches.
func New(cfg *config.Config, store cache.Store, client fetcher.HTTPClient, log *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		store:   store,
		fetcher: fetcher.New(client),
		render:  feed.New(cfg),
		log:     log,
		now:     time.Now,
	}
}

// NewWithClock creates a Pipeline with a fixed clock driving the
// start-from-today filter and the renderer timestamps (useful for testing).
func NewWithClock(cfg *config.Config, store cache.Store, client fetcher.HTTPClient, log *slog.Logger, now func() time.Time) *Pipeline {
	p := New(cfg, store, client, log)
	p.render = feed.NewWithClock(cfg, now)
	p.now = now
	return p
}

// Run returns the feed document, with cached reporting whether it was
// served from the cache. A fresh document is cached only when every league
// fetched and extracted cleanly; a render failure aborts the run and leaves
// the cache untouched.
func (p *Pipeline) Run(ctx context.Context) (doc string, cached bool, err error) {
	if doc, ok := p.store.Get(ctx); ok {
		p.log.Debug("serving cached feed")
		return doc, true, nil
	}

	records, cacheable := p.fetchAll(ctx)

	set := filter.ByKeywords(records, p.cfg.Keywords)
	set = filter.FromToday(set, p.cfg.StartFromToday, p.now())
	entries := filter.OrderBy(set, p.cfg.OrderBy)

	doc, err = p.render.Render(entries)
	if err != nil {
		return "", false, err
	}

	if cacheable {
		if err := p.store.Put(ctx, doc, p.cfg.TTL); err != nil {
			p.log.Error("cache write", "error", err)
		}
	}
	return doc, false, nil
}

// fetchAll downloads and extracts every configured league in configuration
// order. A failing league is skipped and downgrades cacheability; the
// remaining leagues are still processed.
func (p *Pipeline) fetchAll(ctx context.Context) (records []model.Match, cacheable bool) {
	cacheable = true
	for _, league := range p.cfg.Leagues {
		p.log.Debug("parse league", "id", league.ID, "name", league.Name)

		raw, err := p.fetcher.Fetch(ctx, p.cfg.LeagueURL(league.ID))
		if err != nil {
			p.log.Warn("fetch league", "id", league.ID, "name", league.Name, "error", err)
			cacheable = false
			continue
		}

		games, err := extract.Games(raw, league.ID)
		if err != nil {
			p.log.Warn("extract league", "id", league.ID, "name", league.Name, "error", err)
			cacheable = false
			continue
		}
		records = append(records, games...)
	}
	return records, cacheable
}
