package run

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/cli/cmd"
	"github.com/dstraub/satellite-plugin/pkg/workflow"
)

func Script(_ *cli.Context) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	contents, err := os.ReadFile(cmd.ScriptArgs.ScriptFile)
	if err != nil {
		env.Log.Errorf("reading '%s': %s", cmd.ScriptArgs.ScriptFile, err)
		return cli.Exit(checkLogMessage, 1)
	}

	script := workflow.RemoteScript{
		Group:  cmd.ScriptArgs.Group,
		Script: string(contents),
		UseSSH: cmd.ScriptArgs.UseSSH,
	}

	if !script.Run(env) {
		return cli.Exit(checkLogMessage, 1)
	}

	return nil
}
