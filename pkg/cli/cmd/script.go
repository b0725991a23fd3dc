package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type ScriptFlags struct {
	Group      string
	ScriptFile string
	UseSSH     bool
}

var ScriptArgs ScriptFlags

func NewScriptCommand(action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "script",
		Usage:     "Run a shell script on all hosts of a system group",
		UsageText: fmt.Sprintf("%s script [OPTIONS]", appName),
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "group",
				Usage:       "Name of the system group",
				Required:    true,
				Destination: &ScriptArgs.Group,
			},
			&cli.StringFlag{
				Name:        "script-file",
				Usage:       "Local file with the script to run",
				Required:    true,
				Destination: &ScriptArgs.ScriptFile,
			},
			&cli.BoolFlag{
				Name:        "ssh",
				Usage:       "Execute over SSH instead of scheduling a script run on the server",
				Destination: &ScriptArgs.UseSSH,
			},
		},
	}
}
