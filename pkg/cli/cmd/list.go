package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type ListFlags struct {
	Kind          string
	ConfigChannel string
}

var ListArgs ListFlags

func NewListCommand(action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List channels, configuration channels, system groups or configuration paths",
		UsageText: fmt.Sprintf("%s list [OPTIONS]", appName),
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Usage:       "What to list: channels, config-channels, groups or config-paths",
				Value:       "channels",
				Destination: &ListArgs.Kind,
			},
			&cli.StringFlag{
				Name:        "config-channel",
				Usage:       "Configuration channel to list the paths of",
				Destination: &ListArgs.ConfigChannel,
			},
		},
	}
}
