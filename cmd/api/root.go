package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"realreselling/internal/config"
	"realreselling/internal/logger"

	"github.com/spf13/cobra"
)

var (
	RootCmd = &cobra.Command{
		Use:   "funnel",
		Short: "Real Reselling bank-transfer funnel backend",

		// All child commands will use this
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

			conf = config.Load()
			if err := conf.Validate(); err != nil {
				return err
			}
			return logger.Init(conf.LogLevel)
		},

		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cancel != nil {
				cancel()
			}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	conf   *config.Config
	ctx    context.Context
	cancel context.CancelFunc
)
