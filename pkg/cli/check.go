package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/duke-colab/bluebook/pkg/cli/config"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

func cmdCheck() *cli.Command {
	var query string
	var duid string
	var upstreamCfg config.Upstream
	var referenceCfg config.Reference

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Usage:       "Directory search to probe (if specified, the directory API is checked)",
			Sources:     cli.EnvVars("BLUEBOOK_CHECK_QUERY"),
			Destination: &query,
		},
		&cli.StringFlag{
			Name:        "duid",
			Usage:       "Scholar DUID to probe (if specified, the scholars API is checked)",
			Sources:     cli.EnvVars("BLUEBOOK_CHECK_DUID"),
			Destination: &duid,
		},
	}

	// Add shared config flags
	flags = append(flags, upstreamCfg.Flags()...)
	flags = append(flags, referenceCfg.Flags()...)

	return &cli.Command{
		Name:    "check",
		Aliases: []string{"c"},
		Usage:   "Validate configuration and probe the upstream data sources",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate reference data configuration
			referenceData, err := referenceCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "reference data validation failed")
			}
			logger.Info("Reference data validation passed",
				"groups", len(referenceData.Groups),
				"categories", len(referenceData.Categories),
			)

			feedClient, directoryClient, scholarClient, err := upstreamCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure upstream clients")
			}

			// Step 2: Fetch one day of the calendar feed
			events, err := feedClient.Fetch(ctx, 1)
			if err != nil {
				return goerr.Wrap(err, "calendar feed check failed")
			}
			logger.Info("Calendar feed check passed", "events", len(events))

			// Step 3: If a query is specified, probe the directory API
			if query == "" {
				logger.Info("No query specified, skipping directory check")
			} else {
				records, err := directoryClient.Search(ctx, query)
				if err != nil {
					return goerr.Wrap(err, "directory check failed", goerr.V("query", query))
				}
				logger.Info("Directory check passed", "query", query, "results", len(records))
			}

			// Step 4: If a DUID is specified, probe the scholars API
			if duid == "" {
				logger.Info("No DUID specified, skipping scholars check")
			} else {
				items, err := scholarClient.Profile(ctx, types.DUID(duid))
				if err != nil {
					return goerr.Wrap(err, "scholars check failed", goerr.V("duid", duid))
				}
				logger.Info("Scholars check passed", "duid", duid, "items", len(items))
			}

			return nil
		},
	}
}
