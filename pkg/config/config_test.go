package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	got, err := FromEnv(mapLookup(nil))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	want := &Config{
		Addr:             ":8080",
		BaseURL:          "https://t.me/",
		PublicHost:       "your-domain",
		Developer:        "@istgrehu",
		MadeBy:           "Rehu",
		LogFormat:        "text",
		LogLevel:         slog.LevelInfo,
		ClassifyTimeout:  8 * time.Second,
		ScrapeTimeout:    10 * time.Second,
		ProbeTimeout:     3 * time.Second,
		ProbeConcurrency: 9,
		Attempts:         1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	got, err := FromEnv(mapLookup(map[string]string{
		"TGLOOKUP_ADDR":              "127.0.0.1:9000",
		"TGLOOKUP_BASE_URL":          "http://mirror.local",
		"TGLOOKUP_PUBLIC_HOST":       "tg.example.com",
		"TGLOOKUP_PROXY":             "socks5://127.0.0.1:9050",
		"TGLOOKUP_LOG_FORMAT":        "JSON",
		"TGLOOKUP_LOG_LEVEL":         "debug",
		"TGLOOKUP_PROBE_TIMEOUT":     "1500ms",
		"TGLOOKUP_PROBE_CONCURRENCY": "1",
		"TGLOOKUP_ATTEMPTS":          "3",
	}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if got.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", got.Addr)
	}
	if got.BaseURL != "http://mirror.local/" {
		t.Errorf("BaseURL = %q, want trailing slash added", got.BaseURL)
	}
	if got.LogFormat != "json" || got.LogLevel != slog.LevelDebug {
		t.Errorf("log = %s/%v, want json/debug", got.LogFormat, got.LogLevel)
	}
	if got.ProbeTimeout != 1500*time.Millisecond {
		t.Errorf("ProbeTimeout = %v, want 1.5s", got.ProbeTimeout)
	}
	if got.ProbeConcurrency != 1 || got.Attempts != 3 {
		t.Errorf("ProbeConcurrency/Attempts = %d/%d, want 1/3", got.ProbeConcurrency, got.Attempts)
	}
	if n := len(got.TelegramOptions(slog.Default())); n != 8 {
		t.Errorf("TelegramOptions() = %d options, want 8 with proxy", n)
	}
	if rc := got.ReportConfig(); rc.PublicHost != "tg.example.com" || rc.BaseURL != "http://mirror.local/" {
		t.Errorf("ReportConfig() = %+v", rc)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "TGLOOKUP_SCRAPE_TIMEOUT", "soon"},
		{"negative duration", "TGLOOKUP_CLASSIFY_TIMEOUT", "-1s"},
		{"bad integer", "TGLOOKUP_PROBE_CONCURRENCY", "many"},
		{"zero concurrency", "TGLOOKUP_PROBE_CONCURRENCY", "0"},
		{"zero attempts", "TGLOOKUP_ATTEMPTS", "0"},
		{"bad level", "TGLOOKUP_LOG_LEVEL", "loud"},
		{"bad format", "TGLOOKUP_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(mapLookup(map[string]string{tt.key: tt.val}))
			if err == nil {
				t.Fatalf("FromEnv(%s=%s) error = nil, want error", tt.key, tt.val)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q does not name %s", err, tt.key)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TGLOOKUP_MADE_BY=Someone\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("TGLOOKUP_MADE_BY") }) //nolint:errcheck // test cleanup

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MadeBy != "Someone" {
		t.Errorf("MadeBy = %q, want %q", cfg.MadeBy, "Someone")
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load() with missing file error = %v, want nil", err)
	}
}
