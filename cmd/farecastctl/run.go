package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"farecast-service/internal/app"
	"farecast-service/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newRunNowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "run-now",
		Short: "Run the fare job once, ignoring the daily window and marker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.cfg.ValidateJob(); err != nil {
				return err
			}
			report, err := app.NewFareJob(e.cfg, nil, e.log).Run(cmd.Context())
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
}

func newTickCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Evaluate the daily window once, running the job when due",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Each invocation is a new process, so an in-memory marker never dedups.
			if e.cfg.MarkerBackend == "memory" {
				return errors.New("tick requires a durable MARKER_BACKEND (redis, mongo or postgres)")
			}
			if err := e.cfg.ValidateJob(); err != nil {
				return err
			}
			ctx := cmd.Context()
			markers, closeMarkers, err := app.NewMarkerRepository(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer closeMarkers()

			gate, err := app.NewScheduleGate(e.cfg, app.NewFareJob(e.cfg, nil, e.log), markers, nil, e.log)
			if err != nil {
				return err
			}
			decision, err := gate.Tick(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), decision)
			return err
		},
	}
}

func printReport(w io.Writer, report *entity.RunReport) {
	fmt.Fprintf(w, "run %s took %s\n", report.RunID, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	for _, o := range report.Outcomes {
		status := "published"
		if o.Failed() {
			status = fmt.Sprintf("failed at %s: %v", o.Stage, o.Err)
		}
		fmt.Fprintf(w, "  %-10s %-4s fetched=%d ranked=%d %s\n", o.Destination, o.Code, o.Fetched, o.Ranked, status)
	}
}
