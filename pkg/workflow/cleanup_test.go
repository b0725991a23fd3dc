package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstraub/satellite-plugin/pkg/satellite"
)

func TestCleanupRemovesOnlyExpiredPackages(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	client := &fakeClient{
		removeOK: true,
		packages: map[string][]satellite.Package{
			"staging": {
				{ID: 1, PackageName: "sample-app-1.0-1", LastModified: "2024-04-01 12:00:00"},
				{ID: 2, PackageName: "sample-app-1.1-1", LastModified: "2024-05-09 13:00:00"},
				{ID: 3, PackageName: "other-tool-2.0-1", LastModified: "2024-01-01 12:00:00"},
			},
		},
	}
	env, sink := newTestEnvironment(client)

	cleanup := Cleanup{
		Channel:        "staging",
		PackagePattern: `sample-app.*`,
		MaxAgeDays:     7,
		Now:            now,
	}

	require.True(t, cleanup.Run(env))
	require.Equal(t, []string{"listPackages", "removePackages"}, client.ops())
	assert.Equal(t, []int64{1}, client.calls[1].args[1])
	assert.Contains(t, sink.String(), "removed 1 packages from 'staging'")
}

func TestCleanupAgeBoundary(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	client := &fakeClient{
		removeOK: true,
		packages: map[string][]satellite.Package{
			"staging": {
				// exactly 7 days old
				{ID: 1, PackageName: "a-1.0-1", LastModified: "2024-05-03 12:00:00"},
				// 6 days and 23 hours old
				{ID: 2, PackageName: "b-1.0-1", LastModified: "2024-05-03 13:00:00"},
			},
		},
	}
	env, _ := newTestEnvironment(client)

	cleanup := Cleanup{
		Channel:        "staging",
		PackagePattern: `.*`,
		MaxAgeDays:     7,
		Now:            now,
	}

	require.True(t, cleanup.Run(env))
	require.Len(t, client.calls, 2)
	assert.Equal(t, []int64{1}, client.calls[1].args[1])
}

func TestCleanupEmptyPatternConsidersAllPackages(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	client := &fakeClient{
		removeOK: true,
		packages: map[string][]satellite.Package{
			"staging": {
				{ID: 1, PackageName: "sample-app-1.0-1", LastModified: "2024-04-01 12:00:00"},
				{ID: 3, PackageName: "other-tool-2.0-1", LastModified: "2024-01-01 12:00:00"},
			},
		},
	}
	env, _ := newTestEnvironment(client)

	cleanup := Cleanup{Channel: "staging", MaxAgeDays: 7, Now: now}

	require.True(t, cleanup.Run(env))
	require.Equal(t, []string{"listPackages", "removePackages"}, client.ops())
	assert.Equal(t, []int64{1, 3}, client.calls[1].args[1])
}

func TestCleanupSkipsUnreadableDates(t *testing.T) {
	client := &fakeClient{
		packages: map[string][]satellite.Package{
			"staging": {
				{ID: 1, PackageName: "sample-app-1.0-1", LastModified: "yesterday"},
			},
		},
	}
	env, sink := newTestEnvironment(client)

	cleanup := Cleanup{
		Channel:        "staging",
		PackagePattern: `.*`,
		MaxAgeDays:     0,
		Now:            time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}

	require.True(t, cleanup.Run(env))
	assert.Equal(t, []string{"listPackages"}, client.ops())
	assert.Contains(t, sink.String(), "[ERROR] cannot read modification date 'yesterday' of package 'sample-app-1.0-1'")
}

func TestCleanupNothingToRemove(t *testing.T) {
	client := &fakeClient{
		packages: map[string][]satellite.Package{"staging": nil},
	}
	env, sink := newTestEnvironment(client)

	cleanup := Cleanup{Channel: "staging", PackagePattern: `.*`, MaxAgeDays: 7}

	require.True(t, cleanup.Run(env))
	assert.Equal(t, []string{"listPackages"}, client.ops())
	assert.Contains(t, sink.String(), "found no packages to remove")
}

func TestCleanupRemovalFailure(t *testing.T) {
	client := &fakeClient{
		failOn:  "removePackages",
		failErr: errors.New("boom"),
		packages: map[string][]satellite.Package{
			"staging": {
				{ID: 1, PackageName: "sample-app-1.0-1", LastModified: "2020-01-01 12:00:00"},
			},
		},
	}
	env, sink := newTestEnvironment(client)

	cleanup := Cleanup{
		Channel:        "staging",
		PackagePattern: `.*`,
		MaxAgeDays:     7,
		Now:            time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}

	require.False(t, cleanup.Run(env))
	assert.Contains(t, sink.String(), "[ERROR] removing packages from 'staging'")
}
