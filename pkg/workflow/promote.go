package workflow

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dstraub/satellite-plugin/pkg/config"
	"github.com/dstraub/satellite-plugin/pkg/satellite"
	"github.com/dstraub/satellite-plugin/pkg/task"
)

const snapshotMarker = "SNAPSHOT"

// Promote moves a package from a staging channel into a release channel.
// Candidates computes what may be promoted, Select stages the chosen
// package as a task for a follow-up build step.
type Promote struct {
	SourceChannel    string
	TargetChannel    string
	PackagePattern   string
	IncludeSnapshots bool
}

// Candidates returns the packages of the source channel that match the
// pattern and are not yet present in the target channel. Snapshot builds
// are excluded unless explicitly requested.
func (p Promote) Candidates(env *Environment) ([]satellite.Package, error) {
	// An empty pattern matches everything, like Config.PathPattern.
	var pattern *regexp.Regexp
	if p.PackagePattern != "" {
		var err error
		pattern, err = config.Anchored(p.PackagePattern)
		if err != nil {
			return nil, fmt.Errorf("compiling package pattern %q: %w", p.PackagePattern, err)
		}
	}

	session, err := env.Dial()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = session.Close()
	}()

	source, err := session.ListPackages(p.SourceChannel)
	if err != nil {
		return nil, fmt.Errorf("listing packages of '%s': %w", p.SourceChannel, err)
	}

	target, err := session.ListPackages(p.TargetChannel)
	if err != nil {
		return nil, fmt.Errorf("listing packages of '%s': %w", p.TargetChannel, err)
	}

	promoted := make(map[string]bool, len(target))
	for _, pkg := range target {
		promoted[pkg.PackageName] = true
	}

	var candidates []satellite.Package
	for _, pkg := range source {
		if pattern != nil && !pattern.MatchString(pkg.PackageName) {
			continue
		}
		if !p.IncludeSnapshots && strings.Contains(pkg.PackageName, snapshotMarker) {
			continue
		}
		if promoted[pkg.PackageName] {
			continue
		}
		candidates = append(candidates, pkg)
	}

	return candidates, nil
}

// Select resolves the chosen candidate and stages it as an add-package
// task. The returned envelope is meant to be stored as the ADD_PACKAGE
// build variable and executed by the task runner.
func (p Promote) Select(env *Environment, packageName string) (string, error) {
	env.banner("promote", fmt.Sprintf("select '%s' for '%s'", packageName, p.TargetChannel))

	candidates, err := p.Candidates(env)
	if err != nil {
		return "", err
	}

	for _, candidate := range candidates {
		if candidate.PackageName != packageName {
			continue
		}
		env.Log.Infof("staged '%s' (package-id: %d)", candidate.PackageName, candidate.ID)
		return task.EncodeAddPackage(task.AddPackage{
			Channel:     p.TargetChannel,
			PackageName: candidate.PackageName,
			PackageID:   candidate.ID,
		})
	}

	return "", fmt.Errorf("package '%s' is not a promotion candidate for '%s'", packageName, p.TargetChannel)
}
