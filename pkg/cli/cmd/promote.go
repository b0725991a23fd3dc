package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type PromoteFlags struct {
	SourceChannel    string
	TargetChannel    string
	PackagePattern   string
	Package          string
	IncludeSnapshots bool
	EnvFile          string
}

var PromoteArgs PromoteFlags

func NewPromoteCommand(action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "promote",
		Usage:     "Promote a package from one channel into another",
		UsageText: fmt.Sprintf("%s promote [OPTIONS]", appName),
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "source-channel",
				Usage:       "Label of the channel to promote from",
				Required:    true,
				Destination: &PromoteArgs.SourceChannel,
			},
			&cli.StringFlag{
				Name:        "target-channel",
				Usage:       "Label of the channel to promote into",
				Required:    true,
				Destination: &PromoteArgs.TargetChannel,
			},
			&cli.StringFlag{
				Name:        "package-pattern",
				Usage:       "Regular expression a candidate package name must match",
				Value:       ".*",
				Destination: &PromoteArgs.PackagePattern,
			},
			&cli.StringFlag{
				Name:        "package",
				Usage:       "Candidate to stage for promotion, omit to list the candidates",
				Destination: &PromoteArgs.Package,
			},
			&cli.BoolFlag{
				Name:        "include-snapshots",
				Usage:       "Offer snapshot builds as promotion candidates",
				Destination: &PromoteArgs.IncludeSnapshots,
			},
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "File receiving the ADD_PACKAGE build variable",
				Destination: &PromoteArgs.EnvFile,
			},
		},
	}
}
