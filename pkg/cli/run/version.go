package run

import (
	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/log"
	"github.com/dstraub/satellite-plugin/pkg/version"
)

func Version(_ *cli.Context) error {
	log.Default().Infof("Satellite CI automation version: %s", version.GetVersion())
	return nil
}
