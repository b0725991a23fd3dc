package workflow

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dstraub/satellite-plugin/pkg/config"
	"github.com/dstraub/satellite-plugin/pkg/log"
	"github.com/dstraub/satellite-plugin/pkg/nvr"
	"github.com/dstraub/satellite-plugin/pkg/satellite"
	"github.com/dstraub/satellite-plugin/pkg/sshexec"
)

// Client is the slice of the Satellite session surface the workflows
// consume. *satellite.Session implements it.
type Client interface {
	Login() error
	Close() error
	ListChannels() ([]string, error)
	ListConfigChannels() ([]string, error)
	ListGroups() ([]string, error)
	ListConfigPaths(configChannel string) ([]string, error)
	ListPackages(channel string) ([]satellite.Package, error)
	AddPackage(channel string, id int64) (bool, error)
	RemovePackages(channel string, ids []int64) (bool, error)
	ReadConfig(configChannel, configPath string) (string, error)
	UpdateConfig(configChannel, configPath, contents string) (bool, error)
	ListHosts(group string) ([]string, error)
	RemoteScript(group, user, script string) (int64, error)
	Push(path, channel string) (nvr.NVR, error)
}

// Environment bundles what every workflow needs: the resolved
// configuration, the CI log sink, the build variables of the surrounding
// job, and the connection factories.
type Environment struct {
	Config *config.Config
	Log    *log.Logger
	// Vars are the build variables handed in by the CI job.
	Vars map[string]string

	// Dial opens a session that stays authenticated until closed.
	Dial func() (Client, error)
	// DialOneShot opens a session that logs out after a single operation.
	DialOneShot func() (Client, error)
	// RunSSH executes a script on one host and returns its exit status.
	RunSSH func(host, script string) int
}

// NewEnvironment wires an environment against a real Satellite server.
func NewEnvironment(cfg *config.Config, logger *log.Logger, vars map[string]string) *Environment {
	executor := sshexec.New(cfg, logger)

	return &Environment{
		Config: cfg,
		Log:    logger,
		Vars:   vars,
		Dial: func() (Client, error) {
			session, err := satellite.New(cfg, logger)
			if err != nil {
				return nil, err
			}
			if err = session.Login(); err != nil {
				_ = session.Close()
				return nil, err
			}
			return session, nil
		},
		DialOneShot: func() (Client, error) {
			return satellite.OneShot(cfg, logger)
		},
		RunSSH: executor.Run,
	}
}

// banner opens the workflow section in the CI log. The generated run id
// only shows up in the debug log; it ties satellite-side schedules back to
// individual CI runs.
func (e *Environment) banner(workflow, subject string) {
	e.Log.Banner(workflow, subject)
	zap.S().Infof("Starting workflow '%s' (run %s)", workflow, uuid.NewString())
}
