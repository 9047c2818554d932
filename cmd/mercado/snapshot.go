package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thaleswillreis/Mercado-Financeiro/internal/recorder"
)

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var requireArtifact bool
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Download the daily IBOV theoretical portfolio from B3",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			if cmd.Flags().Changed("require-artifact") {
				a.cfg.Snapshot.RequireArtifact = requireArtifact
			}

			res, runErr := a.downloader().Run(cmd.Context())
			if res != nil {
				if err := a.recorder.RecordSnapshotRun(recorder.NewSnapshotRun(res, runErr)); err != nil {
					a.logger.Error().Err(err).Msg("record snapshot run")
				}
			}
			if runErr != nil {
				return runErr
			}
			if res.Produced {
				fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&requireArtifact, "require-artifact", false, "fail when the exported file never arrives")
	return cmd
}
