package run

import (
	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/workflow"
)

func RunTasks(_ *cli.Context) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	if !workflow.RunTasks(env) {
		return cli.Exit(checkLogMessage, 1)
	}

	return nil
}
