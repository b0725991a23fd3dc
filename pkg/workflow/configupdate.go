package workflow

import (
	"fmt"

	"github.com/dstraub/satellite-plugin/pkg/task"
)

// ConfigUpdate edits a file in a configuration channel. Read fetches the
// current contents for interactive editing, Stage wraps the edited
// contents into an update-config task for a follow-up build step.
type ConfigUpdate struct {
	ConfigChannel string
	ConfigPath    string
}

// Read returns the current contents of the configuration file.
func (c ConfigUpdate) Read(env *Environment) (string, error) {
	session, err := env.DialOneShot()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = session.Close()
	}()

	contents, err := session.ReadConfig(c.ConfigChannel, c.ConfigPath)
	if err != nil {
		return "", fmt.Errorf("reading '%s' from '%s': %w", c.ConfigPath, c.ConfigChannel, err)
	}

	return contents, nil
}

// Stage wraps the edited contents into an update-config task. The
// returned envelope is meant to be stored as the UPDATE_CONFIG build
// variable and executed by the task runner.
func (c ConfigUpdate) Stage(env *Environment, contents string) (string, error) {
	env.banner("config update", fmt.Sprintf("stage '%s' in '%s'", c.ConfigPath, c.ConfigChannel))

	return task.EncodeUpdateConfig(task.UpdateConfig{
		ConfigChannel: c.ConfigChannel,
		ConfigPath:    c.ConfigPath,
		Contents:      contents,
	})
}
