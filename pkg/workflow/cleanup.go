package workflow

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dstraub/satellite-plugin/pkg/config"
)

const lastModifiedLayout = "2006-01-02 15:04:05"

const millisPerDay = 24 * 60 * 60 * 1000

// Cleanup removes packages from a channel once they exceed a maximum age.
type Cleanup struct {
	Channel        string
	PackagePattern string
	// MaxAgeDays is the minimum age in full days a package must have
	// reached before it is removed.
	MaxAgeDays int

	// Now overrides the reference time. The zero value means the wall
	// clock.
	Now time.Time
}

// Run deletes all matching packages older than the configured age.
func (c Cleanup) Run(env *Environment) bool {
	env.banner("cleanup", fmt.Sprintf("channel '%s', older than %d days", c.Channel, c.MaxAgeDays))

	// An empty pattern matches everything, like Config.PathPattern.
	var pattern *regexp.Regexp
	if c.PackagePattern != "" {
		var err error
		pattern, err = config.Anchored(c.PackagePattern)
		if err != nil {
			env.Log.Errorf("invalid package pattern %q: %s", c.PackagePattern, err)
			return false
		}
	}

	session, err := env.Dial()
	if err != nil {
		env.Log.Errorf("%s", err)
		return false
	}
	defer func() {
		_ = session.Close()
	}()

	packages, err := session.ListPackages(c.Channel)
	if err != nil {
		env.Log.Errorf("listing packages of '%s': %s", c.Channel, err)
		return false
	}

	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(env.Config.Location())

	var ids []int64
	for _, pkg := range packages {
		if pattern != nil && !pattern.MatchString(pkg.PackageName) {
			continue
		}

		modified, err := time.ParseInLocation(lastModifiedLayout, pkg.LastModified, env.Config.Location())
		if err != nil {
			env.Log.Errorf("cannot read modification date '%s' of package '%s'", pkg.LastModified, pkg.PackageName)
			continue
		}

		ageDays := now.Sub(modified).Milliseconds() / millisPerDay
		if ageDays < int64(c.MaxAgeDays) {
			continue
		}

		env.Log.Infof("package to remove: '%s' (%d days old)", pkg.PackageName, ageDays)
		ids = append(ids, pkg.ID)
	}

	if len(ids) == 0 {
		env.Log.Info("found no packages to remove")
		return true
	}

	ok, err := session.RemovePackages(c.Channel, ids)
	if err != nil {
		env.Log.Errorf("removing packages from '%s': %s", c.Channel, err)
		return false
	}
	if !ok {
		env.Log.Errorf("removal from '%s' was not successful", c.Channel)
		return false
	}

	env.Log.Infof("removed %d packages from '%s'", len(ids), c.Channel)
	return true
}
