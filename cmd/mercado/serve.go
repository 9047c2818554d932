package main

import (
	"github.com/spf13/cobra"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/scheduler"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run both jobs on their cron schedules and answer Telegram commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := setup(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.pipeline()
			if err != nil {
				return err
			}
			n, tn := a.notifier()
			sched := scheduler.NewScheduler(ctx, p, a.downloader(), n, a.recorder,
				a.logger.With().Str("component", "scheduler").Logger())
			if err := sched.RegisterAll(a.cfg.Schedule.PipelineCron, a.cfg.Schedule.SnapshotCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if tn != nil {
				go tn.StartPolling(ctx, sched.HandleCommand)
				a.logger.Info().Msg("telegram polling started")
			}
			if runOnStart {
				a.logger.Info().Msg("run-on-start enabled, executing pipeline now")
				go sched.RunPipelineNow(ctx)
			}

			a.logger.Info().Msg("mercado is running, press Ctrl+C to stop")
			<-ctx.Done()
			a.logger.Info().Msg("shutdown signal received, stopping")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "run the pipeline once at startup")
	return cmd
}
