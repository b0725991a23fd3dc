package run

import (
	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/cli/cmd"
	"github.com/dstraub/satellite-plugin/pkg/workflow"
)

func Cleanup(_ *cli.Context) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	cleanup := workflow.Cleanup{
		Channel:        cmd.CleanupArgs.Channel,
		PackagePattern: cmd.CleanupArgs.PackagePattern,
		MaxAgeDays:     cmd.CleanupArgs.MaxAgeDays,
	}

	if !cleanup.Run(env) {
		return cli.Exit(checkLogMessage, 1)
	}

	return nil
}
