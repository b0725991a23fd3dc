package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type ConfigUpdateFlags struct {
	ConfigChannel string
	ConfigPath    string
	ContentsFile  string
	EnvFile       string
}

var ConfigUpdateArgs ConfigUpdateFlags

func NewConfigUpdateCommand(action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "config-update",
		Usage:     "Read or stage an update of a file in a configuration channel",
		UsageText: fmt.Sprintf("%s config-update [OPTIONS]", appName),
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config-channel",
				Usage:       "Label of the configuration channel",
				Required:    true,
				Destination: &ConfigUpdateArgs.ConfigChannel,
			},
			&cli.StringFlag{
				Name:        "config-path",
				Usage:       "Path of the file within the configuration channel",
				Required:    true,
				Destination: &ConfigUpdateArgs.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "contents-file",
				Usage:       "Local file with the edited contents, omit to print the current contents",
				Destination: &ConfigUpdateArgs.ContentsFile,
			},
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "File receiving the UPDATE_CONFIG build variable",
				Destination: &ConfigUpdateArgs.EnvFile,
			},
		},
	}
}
