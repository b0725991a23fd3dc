package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type CleanupFlags struct {
	Channel        string
	PackagePattern string
	MaxAgeDays     int
}

var CleanupArgs CleanupFlags

func NewCleanupCommand(action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "cleanup",
		Usage:     "Remove packages from a channel once they exceed a maximum age",
		UsageText: fmt.Sprintf("%s cleanup [OPTIONS]", appName),
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "channel",
				Usage:       "Label of the channel to clean up",
				Required:    true,
				Destination: &CleanupArgs.Channel,
			},
			&cli.StringFlag{
				Name:        "package-pattern",
				Usage:       "Regular expression a package name must match to be considered",
				Value:       ".*",
				Destination: &CleanupArgs.PackagePattern,
			},
			&cli.IntFlag{
				Name:        "max-age",
				Usage:       "Minimum age in days a package must have reached before removal",
				Required:    true,
				Destination: &CleanupArgs.MaxAgeDays,
			},
		},
	}
}
