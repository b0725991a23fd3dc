package run

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/cli/cmd"
	"github.com/dstraub/satellite-plugin/pkg/task"
	"github.com/dstraub/satellite-plugin/pkg/workflow"
)

func ConfigUpdate(_ *cli.Context) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	update := workflow.ConfigUpdate{
		ConfigChannel: cmd.ConfigUpdateArgs.ConfigChannel,
		ConfigPath:    cmd.ConfigUpdateArgs.ConfigPath,
	}

	if cmd.ConfigUpdateArgs.ContentsFile == "" {
		contents, err := update.Read(env)
		if err != nil {
			env.Log.Errorf("%s", err)
			return cli.Exit(checkLogMessage, 1)
		}
		env.Log.Infof("current contents of '%s':\n%s", update.ConfigPath, contents)
		return nil
	}

	contents, err := os.ReadFile(cmd.ConfigUpdateArgs.ContentsFile)
	if err != nil {
		env.Log.Errorf("reading '%s': %s", cmd.ConfigUpdateArgs.ContentsFile, err)
		return cli.Exit(checkLogMessage, 1)
	}

	envelope, err := update.Stage(env, string(contents))
	if err != nil {
		env.Log.Errorf("%s", err)
		return cli.Exit(checkLogMessage, 1)
	}

	return exportVariable(env, cmd.ConfigUpdateArgs.EnvFile, task.UpdateConfigVariable, envelope)
}
