package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/cli/cmd"
	"github.com/dstraub/satellite-plugin/pkg/cli/run"
	"github.com/dstraub/satellite-plugin/pkg/log"
)

func main() {
	app := cmd.NewApp()
	app.Commands = []*cli.Command{
		cmd.NewPushCommand(run.Push),
		cmd.NewPromoteCommand(run.Promote),
		cmd.NewCleanupCommand(run.Cleanup),
		cmd.NewConfigUpdateCommand(run.ConfigUpdate),
		cmd.NewScriptCommand(run.Script),
		cmd.NewRunTasksCommand(run.RunTasks),
		cmd.NewListCommand(run.List),
		cmd.NewVersionCommand(run.Version),
	}

	if err := app.Run(os.Args); err != nil {
		log.Default().Errorf("%s", err)
		os.Exit(1)
	}
}
