// Package config handles application configuration from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// League is one configured competition: its numeric id on the source site
// and the display name used in feed item descriptions.
type League struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// URL describes how per-league page addresses are built: Placeholder is the
// token inside Domain that gets replaced with a league id.
type URL struct {
	Domain      string `json:"domain"`
	Placeholder string `json:"placeholder"`
}

// Valid order keys for Config.OrderBy besides "none".
var orderKeys = map[string]bool{
	"date":     true,
	"home":     true,
	"away":     true,
	"teams":    true,
	"result":   true,
	"leagueId": true,
}

// Config holds the application configuration. Leagues keeps the file's
// order; leagues are fetched in that order.
type Config struct {
	Leagues        []League `json:"leagues"`
	URL            URL      `json:"url"`
	Keywords       []string `json:"keywords"`
	TTL            int      `json:"ttl"`
	StartFromToday bool     `json:"startFromToday"`
	OrderBy        string   `json:"orderBy"`
	CacheDriver    string   `json:"cacheDriver"`
	CachePath      string   `json:"cachePath"`
	LogLevel       string   `json:"logLevel"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		OrderBy:     "none",
		CacheDriver: "file",
		CachePath:   "./cache.json",
		LogLevel:    "info",
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Leagues) == 0 {
		return nil, fmt.Errorf("config: at least one league is required")
	}
	for _, l := range cfg.Leagues {
		if l.ID <= 0 {
			return nil, fmt.Errorf("config: invalid league id %d", l.ID)
		}
		if l.Name == "" {
			return nil, fmt.Errorf("config: league %d has no name", l.ID)
		}
	}
	if cfg.URL.Domain == "" {
		return nil, fmt.Errorf("config: url.domain is required")
	}
	if cfg.URL.Placeholder == "" {
		return nil, fmt.Errorf("config: url.placeholder is required")
	}
	if !strings.Contains(cfg.URL.Domain, cfg.URL.Placeholder) {
		return nil, fmt.Errorf("config: url.domain does not contain placeholder %q", cfg.URL.Placeholder)
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("config: ttl must not be negative")
	}
	if cfg.OrderBy != "none" && !orderKeys[cfg.OrderBy] {
		return nil, fmt.Errorf("config: unknown orderBy key %q", cfg.OrderBy)
	}
	switch cfg.CacheDriver {
	case "file", "sqlite":
	default:
		return nil, fmt.Errorf("config: unknown cacheDriver %q", cfg.CacheDriver)
	}

	return cfg, nil
}

// LeagueName returns the display name configured for a league id.
func (c *Config) LeagueName(id int) string {
	for _, l := range c.Leagues {
		if l.ID == id {
			return l.Name
		}
	}
	return ""
}

// LeagueURL returns the source page address for a league id, with the
// placeholder token substituted.
func (c *Config) LeagueURL(id int) string {
	return strings.ReplaceAll(c.URL.Domain, c.URL.Placeholder, fmt.Sprint(id))
}
