package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/model"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/notifier"
	"github.com/thaleswillreis/Mercado-Financeiro/internal/recorder"
)

// PipelineRunner runs one acquisition.
type PipelineRunner interface {
	Run(ctx context.Context) (*model.PipelineReport, error)
}

// SnapshotRunner runs one snapshot download.
type SnapshotRunner interface {
	Run(ctx context.Context) (*model.SnapshotResult, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline PipelineRunner
	Snapshot SnapshotRunner
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Logger   zerolog.Logger
	Ctx      context.Context

	// Held for the duration of a run, whichever entry point started it.
	pipelineMu sync.Mutex
	snapshotMu sync.Mutex
}

// NewScheduler creates a new Scheduler. A job still running when its next
// activation fires, or when a manual run is requested, is not started twice.
func NewScheduler(ctx context.Context, p PipelineRunner, s SnapshotRunner, n notifier.Notifier, rec recorder.Recorder, logger zerolog.Logger) *Scheduler {
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	cl := cronLogger{logger}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		Pipeline: p,
		Snapshot: s,
		Notifier: n,
		Recorder: rec,
		Logger:   logger,
		Ctx:      ctx,
	}
}

// RegisterAll registers the pipeline and snapshot jobs.
func (s *Scheduler) RegisterAll(pipelineCron, snapshotCron string) error {
	if _, err := s.Cron.AddFunc(pipelineCron, func() { s.RunPipelineNow(s.Ctx) }); err != nil {
		return fmt.Errorf("register pipeline task: %w", err)
	}
	if _, err := s.Cron.AddFunc(snapshotCron, func() { s.RunSnapshotNow(s.Ctx) }); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info().Msg("scheduler stopped")
}

// RunPipelineNow executes the acquisition immediately and reports the
// outcome. It returns false without running when a pipeline run is already
// in progress.
func (s *Scheduler) RunPipelineNow(ctx context.Context) bool {
	if !s.pipelineMu.TryLock() {
		s.Logger.Warn().Msg("pipeline task already running, skipping")
		return false
	}
	defer s.pipelineMu.Unlock()

	s.Logger.Info().Msg("running pipeline task")
	report, err := s.Pipeline.Run(ctx)
	if err != nil {
		s.Logger.Error().Err(err).Msg("pipeline task")
		s.trySend(ctx, notifier.FormatPipelineFailure(err))
		return true
	}
	s.trySend(ctx, notifier.FormatPipelineReport(report))
	return true
}

// RunSnapshotNow executes the snapshot download immediately, records and
// reports the outcome. Like RunPipelineNow it never overlaps a running download.
func (s *Scheduler) RunSnapshotNow(ctx context.Context) bool {
	if !s.snapshotMu.TryLock() {
		s.Logger.Warn().Msg("snapshot task already running, skipping")
		return false
	}
	defer s.snapshotMu.Unlock()

	s.Logger.Info().Msg("running snapshot task")
	res, err := s.Snapshot.Run(ctx)
	if err != nil {
		s.Logger.Error().Err(err).Msg("snapshot task")
	}
	if res != nil {
		if rerr := s.Recorder.RecordSnapshotRun(recorder.NewSnapshotRun(res, err)); rerr != nil {
			s.Logger.Error().Err(rerr).Msg("record snapshot run")
		}
	} else {
		res = &model.SnapshotResult{}
	}
	s.trySend(ctx, notifier.FormatSnapshotResult(res, err))
	return true
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/pipeline":
		if !s.RunPipelineNow(ctx) {
			return notifier.FormatBusy("pipeline")
		}
		return ""
	case "/snapshot":
		if !s.RunSnapshotNow(ctx) {
			return notifier.FormatBusy("snapshot")
		}
		return ""
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if err := s.Notifier.Send(ctx, text); err != nil {
		s.Logger.Error().Err(err).Msg("send notification")
	}
}

// cronLogger routes cron's own messages through zerolog.
type cronLogger struct{ l zerolog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
