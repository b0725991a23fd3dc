package workflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dstraub/satellite-plugin/pkg/log"
	"github.com/dstraub/satellite-plugin/pkg/satellite"
)

// RemoteScript runs a shell script on every host of a system group,
// either scheduled through the server or directly over SSH.
type RemoteScript struct {
	Group  string
	Script string
	// UseSSH executes the script over SSH instead of scheduling a script
	// run on the server.
	UseSSH bool
}

// Compose prepares a script for execution: build variables referenced by
// the script are injected as shell assignments, and a shebang is added
// when the script body does not bring its own.
func Compose(script string, vars map[string]string, logger *log.Logger) string {
	var sb strings.Builder

	if !strings.HasPrefix(script, "#!/") {
		sb.WriteString("#!/bin/sh\n")
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.HasPrefix(name, "_") {
			continue
		}
		if !strings.Contains(script, "$"+name) {
			continue
		}
		logger.Infof("insert '%s=%s'", name, vars[name])
		sb.WriteString(name + `="` + vars[name] + "\"\n")
	}

	sb.WriteString("\n")
	sb.WriteString(script)

	return sb.String()
}

// Run executes the script on all hosts of the group.
func (r RemoteScript) Run(env *Environment) bool {
	env.banner("remote script", fmt.Sprintf("group '%s'", r.Group))

	user := env.Config.SSHUser
	if user == "root" && !env.Config.RootAllowed {
		env.Log.Errorf("%s: scripts must not run as root", satellite.ErrPolicyViolation)
		return false
	}

	script := Compose(r.Script, env.Vars, env.Log)

	if r.UseSSH {
		return r.runOverSSH(env, script)
	}

	session, err := env.DialOneShot()
	if err != nil {
		env.Log.Errorf("%s", err)
		return false
	}
	defer func() {
		_ = session.Close()
	}()

	actionID, err := session.RemoteScript(r.Group, user, script)
	if err != nil {
		env.Log.Errorf("scheduling script for group '%s': %s", r.Group, err)
		return false
	}

	env.Log.Infof("scheduled script run %d for group '%s'", actionID, r.Group)
	return true
}

func (r RemoteScript) runOverSSH(env *Environment, script string) bool {
	session, err := env.DialOneShot()
	if err != nil {
		env.Log.Errorf("%s", err)
		return false
	}
	defer func() {
		_ = session.Close()
	}()

	hosts, err := session.ListHosts(r.Group)
	if err != nil {
		env.Log.Errorf("listing hosts of group '%s': %s", r.Group, err)
		return false
	}

	succeeded := true
	for _, host := range hosts {
		if status := env.RunSSH(host, script); status != 0 {
			succeeded = false
		}
	}

	return succeeded
}
