package integration

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipsync/internal/app"
	"pipsync/internal/types"
	"pipsync/tests/testutil"
)

// TestGoldenSync syncs a copy of fixtures/project using the captured
// dependency graph and compares the written requirements files against
// committed golden files. If a golden file does not exist yet (first run),
// it is written so it can be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenSync(t *testing.T) {
	tests := []struct {
		name       string
		includeDev bool
		golden     map[string]string
	}{
		{
			name: "default",
			golden: map[string]string{
				"requirements.txt":     "requirements.txt",
				"web-requirements.txt": filepath.Join("services", "web", "requirements.txt"),
			},
		},
		{
			name:       "dev",
			includeDev: true,
			golden: map[string]string{
				"requirements.dev.txt": "requirements.txt",
				"web-requirements.txt": filepath.Join("services", "web", "requirements.txt"),
			},
		},
	}
	goldenDir := filepath.Join(testutil.RepoRoot(t), "tests", "integration", "testdata", "golden")
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			project := testutil.FixtureProject(t)
			_, err := app.NewService().Sync(t.Context(), app.SyncRequest{
				Root:       project,
				IncludeDev: tt.includeDev,
				GraphFile:  filepath.Join(project, "graph.json"),
			})
			require.NoError(t, err)

			for name, rel := range tt.golden {
				actual, err := os.ReadFile(filepath.Join(project, rel))
				require.NoError(t, err)

				goldenPath := filepath.Join(goldenDir, name)
				if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
					// Golden file doesn't exist yet -- write it.
					require.NoError(t, os.MkdirAll(goldenDir, 0o755))
					require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
					t.Logf("golden file written: %s (commit it)", goldenPath)
					continue
				}

				expected, err := os.ReadFile(goldenPath)
				require.NoError(t, err)
				assert.Equal(t, string(expected), string(actual),
					"golden mismatch for %s -- delete testdata/golden/ and re-run to regenerate", name)
			}
		})
	}
}

// TestGoldenSyncStructure verifies the report produced for the fixture
// project independent of the exact requirement lines.
func TestGoldenSyncStructure(t *testing.T) {
	project := testutil.FixtureProject(t)
	result, err := app.NewService().Sync(t.Context(), app.SyncRequest{
		Root:      project,
		GraphFile: filepath.Join(project, "graph.json"),
	})
	require.NoError(t, err)
	report := result.Report

	t.Run("hidden directories are not scanned", func(t *testing.T) {
		for _, file := range report.Files {
			assert.NotContains(t, file.Source, ".venv")
		}
		assert.NoFileExists(t, filepath.Join(project, ".venv", "requirements.txt"))
	})

	t.Run("file statuses", func(t *testing.T) {
		statuses := map[string]types.FileStatus{}
		for _, file := range report.Files {
			rel, err := filepath.Rel(project, file.Output)
			require.NoError(t, err)
			statuses[rel] = file.Status
		}
		rootOut := "requirements.txt"
		legacyOut := filepath.Join("legacy", "requirements.txt")
		webOut := filepath.Join("services", "web", "requirements.txt")
		want := map[string]types.FileStatus{
			rootOut:   types.FileStatusSynced,
			legacyOut: types.FileStatusSkipped,
			webOut:    types.FileStatusSynced,
		}
		if diff := cmp.Diff(want, statuses); diff != "" {
			t.Fatalf("unexpected statuses (-want +got):\n%s", diff)
		}
	})

	t.Run("dev dependency is pruned from the root file", func(t *testing.T) {
		for _, file := range report.Files {
			if file.Output == filepath.Join(project, "requirements.txt") {
				assert.Equal(t, []string{"pytest"}, file.Pruned)
			}
		}
	})

	t.Run("web drift is classified", func(t *testing.T) {
		var changes []types.SyncChange
		for _, file := range report.Files {
			if file.Output == filepath.Join(project, "services", "web", "requirements.txt") {
				changes = file.Changes
			}
		}
		actions := map[string]types.ChangeAction{}
		for _, change := range changes {
			actions[change.Package] = change.Action
		}
		want := map[string]types.ChangeAction{
			"blinker":  types.ChangeActionAdded,
			"click":    types.ChangeActionAdded,
			"flask":    types.ChangeActionUpgraded,
			"jinja2":   types.ChangeActionAdded,
			"werkzeug": types.ChangeActionUpgraded,
		}
		if diff := cmp.Diff(want, actions); diff != "" {
			t.Fatalf("unexpected drift (-want +got):\n%s", diff)
		}
		names := make([]string, 0, len(changes))
		for _, change := range changes {
			names = append(names, change.Package)
		}
		assert.True(t, sort.StringsAreSorted(names), "changes must be sorted by package")
	})

	t.Run("second sync is a no-op", func(t *testing.T) {
		again, err := app.NewService().Check(t.Context(), app.SyncRequest{
			Root:      project,
			GraphFile: filepath.Join(project, "graph.json"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, again.Report.Unchanged)
	})
}
