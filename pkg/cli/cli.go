package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/duke-colab/bluebook/pkg/cli/config"
	"github.com/duke-colab/bluebook/pkg/utils/errutil"
	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "bluebook",
		Usage:   "Campus events, directory and scholars gateway for LLM tool callers",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting bluebook", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(version),
			cmdAgent(),
			cmdCheck(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}
