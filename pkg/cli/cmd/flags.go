package cmd

import "github.com/urfave/cli/v2"

type RootFlags struct {
	ConfigFile string
	LogDir     string
}

var RootArgs RootFlags

var (
	ConfigFileFlag = &cli.StringFlag{
		Name:        "config",
		Usage:       "Full path to the connection configuration file",
		Value:       "satellite.yaml",
		EnvVars:     []string{"SATELLITE_CONFIG"},
		Destination: &RootArgs.ConfigFile,
	}
	LogDirFlag = &cli.StringFlag{
		Name:        "log-dir",
		Usage:       "Full path to the directory to store the debug log",
		Value:       ".",
		Destination: &RootArgs.LogDir,
	}
)
