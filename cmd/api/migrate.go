package main

import (
	"realreselling/internal/infrastructure/db"
	"realreselling/internal/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the submissions table",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewSublogger("migrate")
		gdb, err := db.OpenGorm(conf.DBDriver, conf.DBDSN)
		if err != nil {
			return err
		}
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		log.Info("schema up to date")
		return nil
	},
}
