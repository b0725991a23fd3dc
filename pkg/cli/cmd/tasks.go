package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func NewRunTasksCommand(action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "run-tasks",
		Usage:     "Execute the tasks staged in the ADD_PACKAGE and UPDATE_CONFIG build variables",
		UsageText: fmt.Sprintf("%s run-tasks", appName),
		Action:    action,
	}
}
