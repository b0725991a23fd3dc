package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type PushFlags struct {
	Channel string
	EnvFile string
}

var PushArgs PushFlags

func NewPushCommand(action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "Upload RPM files into a channel",
		UsageText: fmt.Sprintf("%s push [OPTIONS] FILE...", appName),
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "channel",
				Usage:       "Label of the target channel",
				Required:    true,
				Destination: &PushArgs.Channel,
			},
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "File receiving the RPM_NAME build variable",
				Destination: &PushArgs.EnvFile,
			},
		},
	}
}
