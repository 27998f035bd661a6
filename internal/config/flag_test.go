package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := Config{SyncInterval: 24 * time.Hour, LogLevel: "info"}

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-d", "q.db", "-l", "https://l", "-t", "https://t", "-s", "6", "-g", "Asha", "-v", "debug"}, expectPanic: false,
			expected: &Config{DatabasePath: "q.db", LibraryURL: "https://l", TemplatesURL: "https://t", SyncInterval: 6 * time.Hour, Consultant: "Asha", LogLevel: "debug"}},
		{name: "Test2 no owned flags", args: []string{"cmd", "-c", "x.json"}, expectPanic: false,
			expected: &Config{SyncInterval: 24 * time.Hour, LogLevel: "info"}},
		{name: "Test3 non-positive staleness ignored", args: []string{"cmd", "-s", "0"}, expectPanic: false,
			expected: &Config{SyncInterval: 24 * time.Hour, LogLevel: "info"}},
		{name: "Test4 incorrect staleness", args: []string{"cmd", "-s", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := base

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(&config) })
				assert.Empty(t, cmp.Diff(&config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(&config) })
			}
		})
	}
}

func TestParseFlags_KeepsSubHourWindow(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	cfg := &Config{SyncInterval: 90 * time.Minute}
	parseFlags(cfg)
	assert.Equal(t, 90*time.Minute, cfg.SyncInterval)
}
