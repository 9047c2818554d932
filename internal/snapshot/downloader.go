package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
)

// Portal defaults for the daily IBOV theoretical portfolio.
const (
	DefaultURL          = "https://sistemaswebb3-listados.b3.com.br/indexPage/day/IBOV?language=pt-br"
	DefaultTriggerXPath = `//*[@id="divContainerIframeB3"]/div/div[1]/form/div[2]/div/div[2]/div/div/div[1]/div[2]/p/a`
	DefaultPattern      = "IBOVDia*.csv"
	DefaultFileName     = "IBOV_LIST.csv"
)

// Config controls one download run.
type Config struct {
	URL             string
	TriggerXPath    string
	Dir             string
	FileName        string // stable target name inside Dir
	Pattern         string // browser-assigned name of the export
	SettleDelay     time.Duration
	Poll            PollOptions
	RequireArtifact bool // surface ErrArtifactTimeout instead of logging it
}

// DefaultConfig returns the portal defaults writing into dir.
func DefaultConfig(dir string) Config {
	return Config{
		URL:          DefaultURL,
		TriggerXPath: DefaultTriggerXPath,
		Dir:          dir,
		FileName:     DefaultFileName,
		Pattern:      DefaultPattern,
		SettleDelay:  10 * time.Second,
		Poll: PollOptions{
			Timeout:     10 * time.Second,
			Interval:    250 * time.Millisecond,
			MaxInterval: 2 * time.Second,
		},
	}
}

// Downloader drives one browser session per Run.
type Downloader struct {
	cfg      Config
	launcher Launcher
	logger   zerolog.Logger
}

// NewDownloader creates a Downloader.
func NewDownloader(cfg Config, launcher Launcher, logger zerolog.Logger) *Downloader {
	return &Downloader{cfg: cfg, launcher: launcher, logger: logger}
}

// Run performs init, navigate, trigger, await and teardown. Only a session
// setup failure, or a file not collected when RequireArtifact is set, is
// returned as an error; everything else ends with Produced reporting the
// outcome.
func (d *Downloader) Run(ctx context.Context) (*model.SnapshotResult, error) {
	res := &model.SnapshotResult{RunID: uuid.NewString(), StartedAt: time.Now()}
	defer func() { res.FinishedAt = time.Now() }()
	logger := d.logger.With().Str("run_id", res.RunID).Logger()

	// Init
	dir, err := filepath.Abs(d.cfg.Dir)
	if err != nil {
		return res, fmt.Errorf("%w: resolve dir: %w", ErrSessionSetup, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("%w: create dir: %w", ErrSessionSetup, err)
	}
	res.Path = filepath.Join(dir, d.cfg.FileName)
	if err := os.Remove(res.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return res, fmt.Errorf("%w: remove stale file: %w", ErrSessionSetup, err)
	}

	b, err := d.launcher.Launch(ctx, dir)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrSessionSetup, err)
	}
	// Teardown
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn().Err(err).Msg("close browser")
		}
	}()

	// Navigate
	logger.Info().Str("url", d.cfg.URL).Msg("loading portal page")
	if err := b.Navigate(ctx, d.cfg.URL); err != nil {
		res.TriggerErr = fmt.Errorf("navigate: %w", err)
		logger.Error().Err(err).Msg("navigation failed, skipping download trigger")
	} else {
		if err := sleep(ctx, d.cfg.SettleDelay); err != nil {
			return res, err
		}
		// Trigger
		if err := b.Click(ctx, d.cfg.TriggerXPath); err != nil {
			res.TriggerErr = err
			logger.Error().Err(err).Msg("could not trigger download on source page")
		} else {
			logger.Info().Msg("download triggered")
		}
	}

	// AwaitArrival + Discover. Without a trigger nothing can arrive, so a
	// single scan replaces the wait.
	var src string
	if res.TriggerErr != nil {
		src, err = Discover(dir, d.cfg.Pattern, d.cfg.FileName)
		if err == nil && src == "" {
			err = fmt.Errorf("%w: download was never triggered", ErrArtifactTimeout)
		}
	} else {
		src, err = AwaitArtifact(ctx, dir, d.cfg.Pattern, d.cfg.FileName, d.cfg.Poll)
	}

	switch {
	case err == nil:
		res.Source = src
		res.Produced = true
		logger.Info().Str("source", src).Str("path", res.Path).Msg("snapshot saved")
	case d.cfg.RequireArtifact:
		return res, err
	case errors.Is(err, ErrArtifactTimeout):
		logger.Warn().Err(err).Str("dir", dir).Msg("snapshot file not found")
	default:
		logger.Error().Err(err).Str("dir", dir).Msg("snapshot file could not be collected")
	}
	return res, nil
}
