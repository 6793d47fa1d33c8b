package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *Config
		wantErr bool
	}{
		{
			name: "full config",
			content: `{
				"leagues": [{"id": 1352, "name": "Kreisliga A"}, {"id": 1400, "name": "Bezirksliga"}],
				"url": {"domain": "https://example.test/liga?id=##id##", "placeholder": "##id##"},
				"keywords": ["FC Bayern"],
				"ttl": 120,
				"startFromToday": true,
				"orderBy": "date",
				"cacheDriver": "sqlite",
				"cachePath": "/tmp/feed.db",
				"logLevel": "debug"
			}`,
			want: &Config{
				Leagues:        []League{{ID: 1352, Name: "Kreisliga A"}, {ID: 1400, Name: "Bezirksliga"}},
				URL:            URL{Domain: "https://example.test/liga?id=##id##", Placeholder: "##id##"},
				Keywords:       []string{"FC Bayern"},
				TTL:            120,
				StartFromToday: true,
				OrderBy:        "date",
				CacheDriver:    "sqlite",
				CachePath:      "/tmp/feed.db",
				LogLevel:       "debug",
			},
		},
		{
			name: "defaults applied",
			content: `{
				"leagues": [{"id": 1, "name": "Liga"}],
				"url": {"domain": "https://example.test/##id##", "placeholder": "##id##"}
			}`,
			want: &Config{
				Leagues:     []League{{ID: 1, Name: "Liga"}},
				URL:         URL{Domain: "https://example.test/##id##", Placeholder: "##id##"},
				OrderBy:     "none",
				CacheDriver: "file",
				CachePath:   "./cache.json",
				LogLevel:    "info",
			},
		},
		{
			name:    "invalid json",
			content: `{"leagues": [`,
			wantErr: true,
		},
		{
			name: "no leagues",
			content: `{
				"leagues": [],
				"url": {"domain": "https://example.test/##id##", "placeholder": "##id##"}
			}`,
			wantErr: true,
		},
		{
			name: "league without name",
			content: `{
				"leagues": [{"id": 5}],
				"url": {"domain": "https://example.test/##id##", "placeholder": "##id##"}
			}`,
			wantErr: true,
		},
		{
			name: "placeholder missing from domain",
			content: `{
				"leagues": [{"id": 1, "name": "Liga"}],
				"url": {"domain": "https://example.test/fixed", "placeholder": "##id##"}
			}`,
			wantErr: true,
		},
		{
			name: "unknown order key",
			content: `{
				"leagues": [{"id": 1, "name": "Liga"}],
				"url": {"domain": "https://example.test/##id##", "placeholder": "##id##"},
				"orderBy": "venue"
			}`,
			wantErr: true,
		},
		{
			name: "negative ttl",
			content: `{
				"leagues": [{"id": 1, "name": "Liga"}],
				"url": {"domain": "https://example.test/##id##", "placeholder": "##id##"},
				"ttl": -5
			}`,
			wantErr: true,
		},
		{
			name: "unknown cache driver",
			content: `{
				"leagues": [{"id": 1, "name": "Liga"}],
				"url": {"domain": "https://example.test/##id##", "placeholder": "##id##"},
				"cacheDriver": "redis"
			}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeConfig(t, tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLeagueLookups(t *testing.T) {
	cfg := &Config{
		Leagues: []League{{ID: 1352, Name: "Kreisliga A"}},
		URL:     URL{Domain: "https://example.test/liga?id=##id##&x=1", Placeholder: "##id##"},
	}

	if diff := cmp.Diff("Kreisliga A", cfg.LeagueName(1352)); diff != "" {
		t.Errorf("LeagueName mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("", cfg.LeagueName(9)); diff != "" {
		t.Errorf("LeagueName for unknown id mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("https://example.test/liga?id=1352&x=1", cfg.LeagueURL(1352)); diff != "" {
		t.Errorf("LeagueURL mismatch (-want +got):\n%s", diff)
	}
}
