package run

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/cli/cmd"
)

func List(_ *cli.Context) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	session, err := env.DialOneShot()
	if err != nil {
		env.Log.Errorf("%s", err)
		return cli.Exit(checkLogMessage, 1)
	}
	defer func() {
		_ = session.Close()
	}()

	var items []string
	switch cmd.ListArgs.Kind {
	case "channels":
		items, err = session.ListChannels()
	case "config-channels":
		items, err = session.ListConfigChannels()
	case "groups":
		items, err = session.ListGroups()
	case "config-paths":
		if cmd.ListArgs.ConfigChannel == "" {
			return cli.Exit("Listing config paths requires the \"config-channel\" option.", 1)
		}
		items, err = session.ListConfigPaths(cmd.ListArgs.ConfigChannel)
	default:
		return cli.Exit(fmt.Sprintf("Unknown list type \"%s\".", cmd.ListArgs.Kind), 1)
	}

	if err != nil {
		env.Log.Errorf("%s", err)
		return cli.Exit(checkLogMessage, 1)
	}

	for _, item := range items {
		env.Log.Info(item)
	}

	return nil
}
