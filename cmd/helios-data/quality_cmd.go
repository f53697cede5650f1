package main

import (
	"github.com/spf13/cobra"

	"github.com/helios-hq/helios/modules/dataquality/infrastructure/persistence"
	"github.com/helios-hq/helios/modules/dataquality/services"
)

func newQualityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Data quality analysis",
	}
	cmd.AddCommand(newQualityCheckCmd())
	return cmd
}

func newQualityCheckCmd() *cobra.Command {
	var org string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Generate the data quality report for one organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orgID, err := parseOrgFlag(org)
			if err != nil {
				return err
			}

			pool, err := connectDB(ctx)
			if err != nil {
				return withCode(exitDB, err)
			}
			defer pool.Close()

			if err := ensureOrganizationExists(ctx, pool, orgID); err != nil {
				return err
			}

			svc := services.NewDataQualityService(persistence.NewDataQualityRepository(), nil)
			report, err := svc.Report(orgContext(ctx, pool, orgID))
			if err != nil {
				return withCode(exitDB, err)
			}
			return writeJSONIndented(report)
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Organization UUID (required)")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}
