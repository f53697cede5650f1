package main

import (
	"github.com/spf13/cobra"

	"github.com/helios-hq/helios/migrations"
	"github.com/helios-hq/helios/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			if err := migrations.Up(cmd.Context(), conf.Database.Opts); err != nil {
				return withCode(exitDB, err)
			}

			type summary struct {
				Status string `json:"status"`
			}
			return writeJSONLine(summary{Status: "migrated"})
		},
	}
}
