package workflow

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstraub/satellite-plugin/pkg/nvr"
)

func TestPushWorkflow(t *testing.T) {
	client := &fakeClient{
		pushIdent: nvr.NVR{Name: "sample-app", Version: "1.0", Release: "1"},
	}
	env, _ := newTestEnvironment(client)

	envFile := filepath.Join(t.TempDir(), "satellite.env")
	push := Push{
		Channel: "staging",
		Files:   []string{"/tmp/sample-app-1.0-1.noarch.rpm"},
		EnvFile: envFile,
	}

	require.True(t, push.Run(env))
	require.Equal(t, []string{"push"}, client.ops())
	assert.Equal(t, []any{"/tmp/sample-app-1.0-1.noarch.rpm", "staging"}, client.calls[0].args)
	assert.Equal(t, 1, client.closeCount)

	contents, err := os.ReadFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "RPM_NAME=sample-app\n", string(contents))
}

func TestPushWorkflowContinuesAfterFailure(t *testing.T) {
	client := &fakeClient{failOn: "push", failErr: errors.New("boom")}
	env, sink := newTestEnvironment(client)

	push := Push{
		Channel: "staging",
		Files:   []string{"/tmp/a-1.0-1.rpm", "/tmp/b-1.0-1.rpm"},
	}

	require.False(t, push.Run(env))
	assert.Equal(t, []string{"push", "push"}, client.ops())
	assert.Contains(t, sink.String(), "[ERROR] pushing '/tmp/a-1.0-1.rpm'")
}

func TestPushWorkflowWithoutEnvFile(t *testing.T) {
	client := &fakeClient{
		pushIdent: nvr.NVR{Name: "sample-app", Version: "1.0", Release: "1"},
	}
	env, _ := newTestEnvironment(client)

	push := Push{Channel: "staging", Files: []string{"/tmp/sample-app-1.0-1.noarch.rpm"}}

	require.True(t, push.Run(env))
}
