package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/helios-hq/helios/modules/dataquality/infrastructure/persistence"
	"github.com/helios-hq/helios/modules/dataquality/services"
	"github.com/helios-hq/helios/modules/directory/domain/catalog"
)

func newResolveCmd() *cobra.Command {
	var (
		org        string
		entityType string
		value      string
		resolution string
		target     string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Apply a resolution to one orphaned value",
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
			res, ok := services.ParseResolution(resolution)
			if !ok {
				return withCode(exitUsage, fmt.Errorf("invalid --resolution %q (expected map|create|ignore)", resolution))
			}

			var targetID *uuid.UUID
			if target != "" {
				id, err := uuid.Parse(target)
				if err != nil {
					return withCode(exitUsage, fmt.Errorf("invalid --target: %w", err))
				}
				targetID = &id
			}

			if res != services.ResolutionIgnore && !yes {
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
			result, err := svc.Resolve(orgContext(ctx, pool, orgID), domain, value, res, targetID)
			if err != nil {
				return withCode(exitDB, err)
			}

			type summary struct {
				Status     string `json:"status"`
				EntityType string `json:"entity_type"`
				Value      string `json:"value"`
				Resolution string `json:"resolution"`
				Affected   int64  `json:"affected"`
			}
			return writeJSONLine(summary{
				Status:     "resolved",
				EntityType: string(domain),
				Value:      value,
				Resolution: string(res),
				Affected:   result.Affected,
			})
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Organization UUID (required)")
	cmd.Flags().StringVar(&entityType, "entity-type", "", "department|location|cost_center (required)")
	cmd.Flags().StringVar(&value, "value", "", "Orphaned free-text value (required)")
	cmd.Flags().StringVar(&resolution, "resolution", "", "map|create|ignore (required)")
	cmd.Flags().StringVar(&target, "target", "", "Target catalog entry UUID (required for map)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the write")

	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("entity-type")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("resolution")
	return cmd
}
