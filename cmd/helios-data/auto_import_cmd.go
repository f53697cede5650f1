package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helios-hq/helios/modules/dataquality/infrastructure/persistence"
	"github.com/helios-hq/helios/modules/dataquality/services"
	"github.com/helios-hq/helios/modules/directory/domain/catalog"
)

func newAutoImportCmd() *cobra.Command {
	var (
		org        string
		entityType string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "auto-import",
		Short: "Create catalog entries for every orphaned value in one domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orgID, err := parseOrgFlag(org)
			if err != nil {
				return err
			}
			domain, err := catalog.ParseDomain(entityType)
			if err != nil {
				return withCode(exitUsage, err)
			}
			if !yes {
				return withCode(exitSafetyNet, fmt.Errorf("refusing to write without --yes"))
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
			result, err := svc.AutoImport(orgContext(ctx, pool, orgID), domain)
			if err != nil {
				return withCode(exitDB, err)
			}

			type summary struct {
				Status     string `json:"status"`
				EntityType string `json:"entity_type"`
				Imported   int64  `json:"imported"`
			}
			return writeJSONLine(summary{
				Status:     "imported",
				EntityType: string(domain),
				Imported:   result.Imported,
			})
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Organization UUID (required)")
	cmd.Flags().StringVar(&entityType, "entity-type", "", "departments|locations|cost_centers (required)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the write")

	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("entity-type")
	return cmd
}
