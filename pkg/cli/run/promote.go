package run

import (
	"github.com/urfave/cli/v2"

	"github.com/dstraub/satellite-plugin/pkg/cli/cmd"
	"github.com/dstraub/satellite-plugin/pkg/task"
	"github.com/dstraub/satellite-plugin/pkg/workflow"
)

func Promote(_ *cli.Context) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	promote := workflow.Promote{
		SourceChannel:    cmd.PromoteArgs.SourceChannel,
		TargetChannel:    cmd.PromoteArgs.TargetChannel,
		PackagePattern:   cmd.PromoteArgs.PackagePattern,
		IncludeSnapshots: cmd.PromoteArgs.IncludeSnapshots,
	}

	if cmd.PromoteArgs.Package == "" {
		return listCandidates(env, promote)
	}

	envelope, err := promote.Select(env, cmd.PromoteArgs.Package)
	if err != nil {
		env.Log.Errorf("%s", err)
		return cli.Exit(checkLogMessage, 1)
	}

	return exportVariable(env, cmd.PromoteArgs.EnvFile, task.AddPackageVariable, envelope)
}

func listCandidates(env *workflow.Environment, promote workflow.Promote) error {
	candidates, err := promote.Candidates(env)
	if err != nil {
		env.Log.Errorf("%s", err)
		return cli.Exit(checkLogMessage, 1)
	}

	if len(candidates) == 0 {
		env.Log.Infof("found no promotion candidates for '%s'", promote.TargetChannel)
		return nil
	}

	for _, candidate := range candidates {
		env.Log.Infof("candidate: '%s' (package-id: %d)", candidate.PackageName, candidate.ID)
	}

	return nil
}
