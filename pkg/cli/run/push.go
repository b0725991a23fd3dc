package run

import (
	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/cli/cmd"
	"github.com/dstraub/satellite-plugin/pkg/workflow"
)

func Push(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("No RPM files given.", 1)
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}

	push := workflow.Push{
		Channel: cmd.PushArgs.Channel,
		Files:   files,
		EnvFile: cmd.PushArgs.EnvFile,
	}

	if !push.Run(env) {
		return cli.Exit(checkLogMessage, 1)
	}

	return nil
}
