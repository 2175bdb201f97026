package main

import (
	"farecast-service/internal/infrastructure/config"
	"farecast-service/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

type env struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "farecastctl",
		Short:         "Operate the daily fare digest and its chat bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.NewLoggerWithLevel(cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newRunNowCmd(e))
	root.AddCommand(newTickCmd(e))
	root.AddCommand(newMarkerCmd(e))
	root.AddCommand(newRegisterCommandsCmd(e))
	root.AddCommand(newTokenCmd(e))

	return root
}
