package run

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dstraub/satellite-plugin/pkg/cli/cmd"
	"github.com/dstraub/satellite-plugin/pkg/config"
	"github.com/dstraub/satellite-plugin/pkg/fileio"
	"github.com/dstraub/satellite-plugin/pkg/log"
	"github.com/dstraub/satellite-plugin/pkg/workflow"
)

const (
	logFilename     = "satellite.log"
	checkLogMessage = "Please check the satellite.log file for more information."
)

// Configures the global debug logger. The audit sink stays on stdout, the
// debug log goes to a file so CI output is not flooded.
func setupLogging(logDir string) {
	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logConfig.Encoding = "console"
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConfig.OutputPaths = []string{filepath.Join(logDir, logFilename)}

	zap.ReplaceGlobals(zap.Must(logConfig.Build()))
}

// newEnvironment loads the connection configuration and wires a workflow
// environment with the build variables of the surrounding CI job.
func newEnvironment() (*workflow.Environment, error) {
	setupLogging(cmd.RootArgs.LogDir)

	logger := log.Default()

	cfg, err := config.Load(cmd.RootArgs.ConfigFile)
	if err != nil {
		logger.Errorf("%s", err)
		zap.S().Error(err)
		return nil, cli.Exit("The configuration could not be loaded.", 1)
	}

	return workflow.NewEnvironment(cfg, logger, buildVars()), nil
}

func buildVars() map[string]string {
	vars := map[string]string{}
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			vars[key] = value
		}
	}
	return vars
}

// exportVariable hands a staged build variable to the follow-up build
// step, either through an env file or the CI log.
func exportVariable(env *workflow.Environment, filename, name, value string) error {
	if filename == "" {
		env.Log.Infof("%s=%s", name, value)
		return nil
	}

	if err := fileio.WriteBuildVars(filename, map[string]string{name: value}); err != nil {
		env.Log.Errorf("%s", err)
		return cli.Exit(checkLogMessage, 1)
	}

	env.Log.Infof("staged '%s' in '%s'", name, filename)
	return nil
}
