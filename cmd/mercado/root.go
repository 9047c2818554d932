package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/collector"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/config"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/exporter"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/logging"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/notifier"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/pipeline"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/reconciler"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/recorder"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/snapshot"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "mercado",
		Short:         "IBOV/USD series pipeline and IBOV portfolio snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "configs/config.yaml", "path to YAML config")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level from config")

	root.AddCommand(newPipelineCmd(opts))
	root.AddCommand(newSnapshotCmd(opts))
	root.AddCommand(newServeCmd(opts))
	return root
}

// app holds the wired components for one command invocation.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	recorder recorder.Recorder
}

func setup(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}
	return &app{cfg: cfg, logger: logger, recorder: rec}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("close recorder")
	}
}

func (a *app) pipeline() (*pipeline.Pipeline, error) {
	start, err := collector.ParseDate(a.cfg.Pipeline.StartDate)
	if err != nil {
		return nil, err
	}
	y := collector.NewYahooFetcher(a.cfg.Yahoo.BaseURL, a.cfg.Proxy, a.cfg.Yahoo.Timeout)
	if a.cfg.Yahoo.UserAgent != "" {
		y.UserAgent = a.cfg.Yahoo.UserAgent
	}
	col := collector.NewCollector(y, start, a.logger.With().Str("component", "collector").Logger())
	return pipeline.New(col, reconciler.New(), exporter.New(a.cfg.Pipeline.OutputDir), a.recorder,
		a.logger.With().Str("component", "pipeline").Logger()), nil
}

func (a *app) downloader() *snapshot.Downloader {
	return snapshot.NewDownloader(a.cfg.SnapshotConfig(), a.cfg.ChromeLauncher(),
		a.logger.With().Str("component", "snapshot").Logger())
}

func (a *app) notifier() (notifier.Notifier, *notifier.TelegramNotifier) {
	if !a.cfg.TelegramEnabled() {
		a.logger.Info().Msg("telegram not configured, notifications disabled")
		return notifier.NoopNotifier{}, nil
	}
	tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy,
		a.logger.With().Str("component", "telegram").Logger())
	return tn, tn
}
