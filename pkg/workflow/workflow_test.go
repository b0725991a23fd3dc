package workflow

import (
	"strings"

	"github.com/dstraub/satellite-plugin/pkg/config"
	"github.com/dstraub/satellite-plugin/pkg/log"
	"github.com/dstraub/satellite-plugin/pkg/nvr"
	"github.com/dstraub/satellite-plugin/pkg/satellite"
)

type opCall struct {
	op   string
	args []any
}

// fakeClient implements Client with canned answers and records every
// operation it serves.
type fakeClient struct {
	packages   map[string][]satellite.Package
	contents   string
	hosts      []string
	addOK      bool
	removeOK   bool
	updateOK   bool
	actionID   int64
	pushIdent  nvr.NVR
	failOn     string
	failErr    error
	calls      []opCall
	closeCount int
}

func (f *fakeClient) record(op string, args ...any) error {
	f.calls = append(f.calls, opCall{op: op, args: args})
	if f.failOn == op {
		return f.failErr
	}
	return nil
}

func (f *fakeClient) ops() []string {
	var ops []string
	for _, call := range f.calls {
		ops = append(ops, call.op)
	}
	return ops
}

func (f *fakeClient) Login() error {
	return f.record("login")
}

func (f *fakeClient) Close() error {
	f.closeCount++
	return nil
}

func (f *fakeClient) ListChannels() ([]string, error) {
	return nil, f.record("listChannels")
}

func (f *fakeClient) ListConfigChannels() ([]string, error) {
	return nil, f.record("listConfigChannels")
}

func (f *fakeClient) ListGroups() ([]string, error) {
	return nil, f.record("listGroups")
}

func (f *fakeClient) ListConfigPaths(configChannel string) ([]string, error) {
	return nil, f.record("listConfigPaths", configChannel)
}

func (f *fakeClient) ListPackages(channel string) ([]satellite.Package, error) {
	if err := f.record("listPackages", channel); err != nil {
		return nil, err
	}
	return f.packages[channel], nil
}

func (f *fakeClient) AddPackage(channel string, id int64) (bool, error) {
	if err := f.record("addPackage", channel, id); err != nil {
		return false, err
	}
	return f.addOK, nil
}

func (f *fakeClient) RemovePackages(channel string, ids []int64) (bool, error) {
	if err := f.record("removePackages", channel, ids); err != nil {
		return false, err
	}
	return f.removeOK, nil
}

func (f *fakeClient) ReadConfig(configChannel, configPath string) (string, error) {
	if err := f.record("readConfig", configChannel, configPath); err != nil {
		return "", err
	}
	return f.contents, nil
}

func (f *fakeClient) UpdateConfig(configChannel, configPath, contents string) (bool, error) {
	if err := f.record("updateConfig", configChannel, configPath, contents); err != nil {
		return false, err
	}
	return f.updateOK, nil
}

func (f *fakeClient) ListHosts(group string) ([]string, error) {
	if err := f.record("listHosts", group); err != nil {
		return nil, err
	}
	return f.hosts, nil
}

func (f *fakeClient) RemoteScript(group, user, script string) (int64, error) {
	if err := f.record("remoteScript", group, user, script); err != nil {
		return 0, err
	}
	return f.actionID, nil
}

func (f *fakeClient) Push(path, channel string) (nvr.NVR, error) {
	if err := f.record("push", path, channel); err != nil {
		return nvr.NVR{}, err
	}
	return f.pushIdent, nil
}

func newTestEnvironment(client *fakeClient) (*Environment, *strings.Builder) {
	var sink strings.Builder

	env := &Environment{
		Config: &config.Config{
			URL:      "http://satellite.example.com",
			User:     "admin",
			Password: "secret",
			SSHUser:  "deploy",
			Timezone: "UTC",
		},
		Log:  log.New(&sink),
		Vars: map[string]string{},
		Dial: func() (Client, error) {
			return client, nil
		},
		DialOneShot: func() (Client, error) {
			return client, nil
		},
	}

	return env, &sink
}
