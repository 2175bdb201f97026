package main

import (
	"fmt"

	"farecast-service/internal/app"
	"farecast-service/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newMarkerCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marker",
		Short: "Inspect or reset the daily run marker",
	}
	cmd.AddCommand(newMarkerGetCmd(e))
	cmd.AddCommand(newMarkerClearCmd(e))
	return cmd
}

func newMarkerGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the date of the last attempted run",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			markers, closeMarkers, err := app.NewMarkerRepository(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer closeMarkers()

			value, found, err := markers.Get(ctx, entity.DailyRunMarkerKey)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not set\n", entity.DailyRunMarkerKey)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", entity.DailyRunMarkerKey, value)
			return nil
		},
	}
}

func newMarkerClearCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the marker so the next tick in the window runs again",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			markers, closeMarkers, err := app.NewMarkerRepository(ctx, e.cfg, e.log)
			if err != nil {
				return err
			}
			defer closeMarkers()

			if err := markers.Delete(ctx, entity.DailyRunMarkerKey); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", entity.DailyRunMarkerKey)
			return nil
		},
	}
}
