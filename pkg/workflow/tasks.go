package workflow

import (
	"github.com/dstraub/satellite-plugin/pkg/task"
)

// RunTasks executes the staged tasks found in the build variables. Each
// task runs in its own one-shot session so a half-finished run never
// leaves an open login behind. The first failing task aborts the run.
func RunTasks(env *Environment) bool {
	for _, variable := range []string{task.AddPackageVariable, task.UpdateConfigVariable} {
		envelope, ok := env.Vars[variable]
		if !ok || envelope == "" {
			continue
		}
		if !runTask(env, variable, envelope) {
			return false
		}
	}

	return true
}

func runTask(env *Environment, variable, envelope string) bool {
	env.banner("satellite task", variable)

	decoded, err := task.Decode(envelope)
	if err != nil {
		env.Log.Errorf("invalid task in variable '%s': %s", variable, err)
		return false
	}

	session, err := env.DialOneShot()
	if err != nil {
		env.Log.Errorf("%s", err)
		return false
	}
	defer func() {
		_ = session.Close()
	}()

	var ok bool
	switch {
	case decoded.AddPackage != nil:
		staged := decoded.AddPackage
		env.Log.Infof("add package '%s' (package-id: %d) to '%s'", staged.PackageName, staged.PackageID, staged.Channel)
		ok, err = session.AddPackage(staged.Channel, staged.PackageID)
	case decoded.UpdateConfig != nil:
		staged := decoded.UpdateConfig
		env.Log.Infof("update '%s' in '%s'", staged.ConfigPath, staged.ConfigChannel)
		ok, err = session.UpdateConfig(staged.ConfigChannel, staged.ConfigPath, staged.Contents)
	}

	if err != nil {
		env.Log.Errorf("task from variable '%s' failed: %s", variable, err)
		return false
	}
	if !ok {
		env.Log.Error("Task was not successful")
		return false
	}

	env.Log.Info("Task was successful")
	return true
}
