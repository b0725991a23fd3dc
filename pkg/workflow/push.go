package workflow

import (
	"fmt"
	"strings"

	"github.com/dstraub/satellite-plugin/pkg/fileio"
)

// Push uploads RPM files into a channel. After a successful run the names
// of the uploaded packages are exported as the RPM_NAME build variable so
// that a follow-up promotion step can pick them up.
type Push struct {
	Channel string
	Files   []string
	// EnvFile receives the exported build variables in KEY=VALUE form.
	// Empty means no export.
	EnvFile string
}

// Run uploads all files and attaches them to the channel.
func (p Push) Run(env *Environment) bool {
	env.banner("push", fmt.Sprintf("%d files to '%s'", len(p.Files), p.Channel))

	session, err := env.Dial()
	if err != nil {
		env.Log.Errorf("%s", err)
		return false
	}
	defer func() {
		_ = session.Close()
	}()

	succeeded := true
	var names []string
	for _, file := range p.Files {
		identity, err := session.Push(file, p.Channel)
		if err != nil {
			env.Log.Errorf("pushing '%s': %s", file, err)
			succeeded = false
			continue
		}
		names = append(names, identity.Name)
	}

	if p.EnvFile != "" && len(names) > 0 {
		vars := map[string]string{"RPM_NAME": strings.Join(names, ",")}
		if err := fileio.WriteBuildVars(p.EnvFile, vars); err != nil {
			env.Log.Errorf("writing build variables to '%s': %s", p.EnvFile, err)
			succeeded = false
		}
	}

	return succeeded
}
