package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/collector"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/snapshot"
)

// Config holds all application configuration.
type Config struct {
	Pipeline struct {
		StartDate string `yaml:"start_date"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"pipeline"`
	Yahoo struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"yahoo"`
	Snapshot struct {
		URL             string        `yaml:"url"`
		TriggerXPath    string        `yaml:"trigger_xpath"`
		OutputDir       string        `yaml:"output_dir"`
		FileName        string        `yaml:"file_name"`
		Pattern         string        `yaml:"pattern"`
		SettleDelay     time.Duration `yaml:"settle_delay"`
		ArrivalTimeout  time.Duration `yaml:"arrival_timeout"`
		PollInterval    time.Duration `yaml:"poll_interval"`
		MaxPollInterval time.Duration `yaml:"max_poll_interval"`
		RequireArtifact bool          `yaml:"require_artifact"`
		Headless        *bool         `yaml:"headless"`
		ChromePath      string        `yaml:"chrome_path"`
		NavigateTimeout time.Duration `yaml:"navigate_timeout"`
		LookupTimeout   time.Duration `yaml:"lookup_timeout"`
	} `yaml:"snapshot"`
	Schedule struct {
		PipelineCron string `yaml:"pipeline_cron"`
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file and fills defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pipeline.StartDate == "" {
		c.Pipeline.StartDate = collector.DefaultStartDate
	}
	if c.Pipeline.OutputDir == "" {
		c.Pipeline.OutputDir = "output"
	}
	if c.Yahoo.BaseURL == "" {
		c.Yahoo.BaseURL = collector.DefaultYahooBaseURL
	}
	if c.Yahoo.Timeout == 0 {
		c.Yahoo.Timeout = 30 * time.Second
	}

	d := snapshot.DefaultConfig("output")
	s := &c.Snapshot
	if s.URL == "" {
		s.URL = d.URL
	}
	if s.TriggerXPath == "" {
		s.TriggerXPath = d.TriggerXPath
	}
	if s.OutputDir == "" {
		s.OutputDir = d.Dir
	}
	if s.FileName == "" {
		s.FileName = d.FileName
	}
	if s.Pattern == "" {
		s.Pattern = d.Pattern
	}
	if s.SettleDelay == 0 {
		s.SettleDelay = d.SettleDelay
	}
	if s.ArrivalTimeout == 0 {
		s.ArrivalTimeout = d.Poll.Timeout
	}
	if s.PollInterval == 0 {
		s.PollInterval = d.Poll.Interval
	}
	if s.MaxPollInterval == 0 {
		s.MaxPollInterval = d.Poll.MaxInterval
	}
	if s.Headless == nil {
		headless := true
		s.Headless = &headless
	}
	if s.NavigateTimeout == 0 {
		s.NavigateTimeout = 60 * time.Second
	}
	if s.LookupTimeout == 0 {
		s.LookupTimeout = 5 * time.Second
	}

	if c.Schedule.PipelineCron == "" {
		c.Schedule.PipelineCron = "0 0 8 * * 1-5"
	}
	if c.Schedule.SnapshotCron == "" {
		c.Schedule.SnapshotCron = "0 30 8 * * 1-5"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/mercado.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if _, err := collector.ParseDate(c.Pipeline.StartDate); err != nil {
		return fmt.Errorf("pipeline.start_date: %w", err)
	}
	if c.Pipeline.OutputDir == "" {
		return fmt.Errorf("pipeline.output_dir is required")
	}
	if c.Snapshot.OutputDir == "" {
		return fmt.Errorf("snapshot.output_dir is required")
	}
	if c.Snapshot.ArrivalTimeout <= 0 {
		return fmt.Errorf("snapshot.arrival_timeout must be positive")
	}
	if c.Snapshot.PollInterval <= 0 || c.Snapshot.MaxPollInterval < c.Snapshot.PollInterval {
		return fmt.Errorf("snapshot.poll_interval must be positive and not exceed max_poll_interval")
	}
	if c.Schedule.PipelineCron == "" || c.Schedule.SnapshotCron == "" {
		return fmt.Errorf("schedule.pipeline_cron and schedule.snapshot_cron are required")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// SnapshotConfig returns the downloader settings.
func (c *Config) SnapshotConfig() snapshot.Config {
	s := c.Snapshot
	return snapshot.Config{
		URL:          s.URL,
		TriggerXPath: s.TriggerXPath,
		Dir:          s.OutputDir,
		FileName:     s.FileName,
		Pattern:      s.Pattern,
		SettleDelay:  s.SettleDelay,
		Poll: snapshot.PollOptions{
			Timeout:     s.ArrivalTimeout,
			Interval:    s.PollInterval,
			MaxInterval: s.MaxPollInterval,
		},
		RequireArtifact: s.RequireArtifact,
	}
}

// ChromeLauncher returns a launcher configured from the snapshot section.
func (c *Config) ChromeLauncher() *snapshot.ChromeLauncher {
	l := snapshot.NewChromeLauncher()
	l.Headless = *c.Snapshot.Headless
	l.ExecPath = c.Snapshot.ChromePath
	l.NavigateTimeout = c.Snapshot.NavigateTimeout
	l.LookupTimeout = c.Snapshot.LookupTimeout
	return l
}
