package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "2025-01-01", cfg.Pipeline.StartDate)
	require.Equal(t, "output", cfg.Pipeline.OutputDir)
	require.Equal(t, 30*time.Second, cfg.Yahoo.Timeout)
	require.Equal(t, "IBOV_LIST.csv", cfg.Snapshot.FileName)
	require.Equal(t, 10*time.Second, cfg.Snapshot.ArrivalTimeout)
	require.True(t, *cfg.Snapshot.Headless)
	require.False(t, cfg.Snapshot.RequireArtifact)
	require.Equal(t, "0 0 8 * * 1-5", cfg.Schedule.PipelineCron)
	require.Equal(t, "data/mercado.db", cfg.Database.SQLitePath)
	require.False(t, cfg.TelegramEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	path := writeTempFile(t, `
pipeline:
  start_date: "2024-06-01"
  output_dir: dados
snapshot:
  settle_delay: 2s
  arrival_timeout: 45s
  poll_interval: 100ms
  max_poll_interval: 1s
  require_artifact: true
  headless: false
  chrome_path: /usr/bin/chromium
telegram:
  bot_token: abc
  chat_id: "123"
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "dados", cfg.Pipeline.OutputDir)
	require.True(t, cfg.TelegramEnabled())
	require.Equal(t, "json", cfg.Log.Format)

	sc := cfg.SnapshotConfig()
	require.Equal(t, 2*time.Second, sc.SettleDelay)
	require.Equal(t, 45*time.Second, sc.Poll.Timeout)
	require.Equal(t, 100*time.Millisecond, sc.Poll.Interval)
	require.True(t, sc.RequireArtifact)
	require.Equal(t, "IBOVDia*.csv", sc.Pattern)

	l := cfg.ChromeLauncher()
	require.False(t, l.Headless)
	require.Equal(t, "/usr/bin/chromium", l.ExecPath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeTempFile(t, "pipeline: [unterminated"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad start date", func(c *Config) { c.Pipeline.StartDate = "01/01/2025" }},
		{"negative timeout", func(c *Config) { c.Snapshot.ArrivalTimeout = -time.Second }},
		{"interval above cap", func(c *Config) { c.Snapshot.MaxPollInterval = time.Millisecond }},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "abc" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
