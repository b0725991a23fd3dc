package satellite

import (
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dstraub/satellite-plugin/pkg/nvr"
)

// Package is one entry of a software channel. PackageName is derived
// locally from name, version and release; it is never taken from the
// server.
type Package struct {
	ID           int64
	Name         string
	Version      string
	Release      string
	LastModified string
	PackageName  string
}

// Host is one member of a system group.
type Host struct {
	ID       int64
	Hostname string
}

// scheduleScriptTimeout is the execution timeout in seconds handed to
// system.scheduleScriptRun.
const scheduleScriptTimeout = int64(300)

// revision keys owned by the server; they must not appear in an update.
var serverManagedKeys = []string{"channel", "path", "modified", "type", "md5", "permissions_mode", "creation"}

// ListChannels returns the labels of all software channels visible to the
// configured user, in server order.
func (s *Session) ListChannels() ([]string, error) {
	value, err := s.call("channel.listMyChannels")
	if err != nil {
		return nil, err
	}

	return stringColumn(value.Records(), "label"), nil
}

// ListConfigChannels returns the labels of all global configuration channels.
func (s *Session) ListConfigChannels() ([]string, error) {
	value, err := s.call("configchannel.listGlobals")
	if err != nil {
		return nil, err
	}

	return stringColumn(value.Records(), "label"), nil
}

// ListGroups returns the names of all system groups that contain at least
// one system.
func (s *Session) ListGroups() ([]string, error) {
	value, err := s.call("systemgroup.listAllGroups")
	if err != nil {
		return nil, err
	}

	var groups []string
	for _, record := range value.Records() {
		if count, _ := record["system_count"].(int64); count > 0 {
			if name, _ := record["name"].(string); name != "" {
				groups = append(groups, name)
			}
		}
	}
	return groups, nil
}

// ListPackages returns all packages of a software channel.
func (s *Session) ListPackages(channel string) ([]Package, error) {
	value, err := s.call("channel.software.listAllPackages", channel)
	if err != nil {
		return nil, err
	}

	records := value.Records()
	packages := make([]Package, 0, len(records))
	for _, record := range records {
		pkg := Package{
			ID:      intField(record, "id"),
			Name:    stringField(record, "name"),
			Version: stringField(record, "version"),
			Release: stringField(record, "release"),
		}
		pkg.LastModified = stringField(record, "last_modified_date")
		pkg.PackageName = nvr.NVR{Name: pkg.Name, Version: pkg.Version, Release: pkg.Release}.String()
		packages = append(packages, pkg)
	}
	return packages, nil
}

// AddPackage attaches a package to a software channel.
func (s *Session) AddPackage(channel string, id int64) (bool, error) {
	value, err := s.call("channel.software.addPackages", channel, []int64{id})
	if err != nil {
		return false, err
	}
	return value.Int() == 1, nil
}

// RemovePackages detaches the packages from the channel and then purges
// each one from the server. Purge failures are logged and never abort the
// batch; the return value reflects the channel detach only.
func (s *Session) RemovePackages(channel string, ids []int64) (bool, error) {
	value, err := s.call("channel.software.removePackages", channel, ids)
	if err != nil {
		return false, err
	}
	if value.Int() != 1 {
		return false, nil
	}
	s.log.Infof("%d packages removed from channel '%s'", len(ids), channel)

	for _, id := range ids {
		result, err := s.call("packages.removePackage", id)
		if err != nil {
			s.log.Errorf("deletion of package %d failed: %s", id, err)
			continue
		}
		if result.Int() != 1 {
			s.log.Errorf("deletion of package %d failed", id)
		}
	}
	return true, nil
}

// ListConfigPaths returns the file paths of a configuration channel,
// reduced to those allowed by the configured path pattern.
func (s *Session) ListConfigPaths(configChannel string) ([]string, error) {
	value, err := s.call("configchannel.listFiles", configChannel)
	if err != nil {
		return nil, err
	}

	pattern := s.config.PathPattern()

	var paths []string
	for _, record := range value.Records() {
		path := stringField(record, "path")
		if pattern != nil && !pattern.MatchString(path) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadConfig returns the current contents of a configuration file,
// base64-decoded when the server stored them encoded.
func (s *Session) ReadConfig(configChannel, configPath string) (string, error) {
	revision, err := s.lookupFileInfo(configChannel, configPath)
	if err != nil {
		return "", err
	}

	contents := stringField(revision, "contents")
	if encoded, _ := revision["contents_enc64"].(bool); encoded {
		decoded, err := base64.StdEncoding.DecodeString(contents)
		if err != nil {
			return "", fmt.Errorf("decoding contents of '%s': %w", configPath, err)
		}
		return string(decoded), nil
	}
	return contents, nil
}

// UpdateConfig creates a new revision of a configuration file and deploys
// the channel to all subscribed systems. The deploy is best-effort: a
// rejected revision increment is logged as a warning and skips the deploy,
// but the operation itself still reports success.
func (s *Session) UpdateConfig(configChannel, configPath, contents string) (bool, error) {
	restore := s.suspendOneShot()
	defer restore()

	revision, err := s.lookupFileInfo(configChannel, configPath)
	if err != nil {
		return false, err
	}

	if encoded, _ := revision["contents_enc64"].(bool); encoded {
		revision["contents"] = base64.StdEncoding.EncodeToString([]byte(contents))
	} else {
		revision["contents"] = contents
	}
	nextRevision := intField(revision, "revision") + 1
	revision["revision"] = nextRevision
	revision["permissions"] = revision["permissions_mode"]

	for _, key := range serverManagedKeys {
		delete(revision, key)
	}

	value, err := s.call("configchannel.createOrUpdatePath", configChannel, configPath, false, revision)
	if err != nil {
		return false, err
	}

	if intField(value.Map(), "revision") == nextRevision {
		s.log.Infof("contents updated, new revision=%d", nextRevision)

		deploy, err := s.call("configchannel.deployAllSystems", configChannel)
		if err != nil {
			return false, err
		}
		if deploy.Int() == 1 {
			s.log.Info("call deployAllSystems: successful")
		} else {
			s.log.Info("call deployAllSystems: error")
		}
	} else {
		s.log.Warn("contents not updated !")
	}

	return true, nil
}

// ListHosts returns the hostnames of a system group.
func (s *Session) ListHosts(group string) ([]string, error) {
	hosts, err := s.listSystems(group)
	if err != nil {
		return nil, err
	}

	hostnames := make([]string, 0, len(hosts))
	for _, host := range hosts {
		hostnames = append(hostnames, host.Hostname)
	}
	return hostnames, nil
}

// RemoteScript schedules the script on every system of the group and
// returns the schedule id.
func (s *Session) RemoteScript(group, user, script string) (int64, error) {
	restore := s.suspendOneShot()
	defer restore()

	hosts, err := s.listSystems(group)
	if err != nil {
		return 0, err
	}

	systemIDs := make([]int64, 0, len(hosts))
	hostnames := make([]string, 0, len(hosts))
	for _, host := range hosts {
		systemIDs = append(systemIDs, host.ID)
		hostnames = append(hostnames, host.Hostname)
	}

	value, err := s.call("system.scheduleScriptRun", systemIDs, user, group, scheduleScriptTimeout, script, time.Now())
	if err != nil {
		return 0, err
	}

	scriptID := value.Int()
	s.log.Infof("schedule script for %v, script-id=%d", hostnames, scriptID)
	return scriptID, nil
}

// FindPackage resolves an NVR to the single matching noarch package.
func (s *Session) FindPackage(n nvr.NVR) (Package, error) {
	value, err := s.call("packages.findByNvrea", n.Name, n.Version, n.Release, "", "noarch")
	if err != nil {
		return Package{}, err
	}

	records := value.Records()
	if len(records) != 1 {
		return Package{}, fmt.Errorf("%w: '%s' matched %d packages", ErrAmbiguousNVR, n, len(records))
	}

	record := records[0]
	return Package{
		ID:      intField(record, "id"),
		Name:    stringField(record, "name"),
		Version: stringField(record, "version"),
		Release: stringField(record, "release"),
	}, nil
}

func (s *Session) listSystems(group string) ([]Host, error) {
	value, err := s.call("systemgroup.listSystems", group)
	if err != nil {
		return nil, err
	}

	records := value.Records()
	hosts := make([]Host, 0, len(records))
	for _, record := range records {
		hosts = append(hosts, Host{
			ID:       intField(record, "id"),
			Hostname: stringField(record, "hostname"),
		})
	}
	return hosts, nil
}

func (s *Session) lookupFileInfo(configChannel, configPath string) (map[string]any, error) {
	value, err := s.call("configchannel.lookupFileInfo", configChannel, []string{configPath})
	if err != nil {
		return nil, err
	}

	records := value.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("no revision found for '%s' in channel '%s'", configPath, configChannel)
	}
	if len(records) > 1 {
		zap.S().Debugf("lookupFileInfo returned %d revisions for '%s', using the first", len(records), configPath)
	}
	return records[0], nil
}

func stringColumn(records []map[string]any, key string) []string {
	column := make([]string, 0, len(records))
	for _, record := range records {
		if value, ok := record[key].(string); ok {
			column = append(column, value)
		}
	}
	return column
}

func stringField(record map[string]any, key string) string {
	value, _ := record[key].(string)
	return value
}

func intField(record map[string]any, key string) int64 {
	switch value := record[key].(type) {
	case int64:
		return value
	case int32:
		return int64(value)
	case int:
		return int64(value)
	default:
		return 0
	}
}
