//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"pipsync/internal/adapters"
	"pipsync/internal/app"
)

// pipenvProjectScript locks and installs a small project with pipenv, then
// serves the project directory (Pipfile, Pipfile.lock and the captured
// graph) over HTTP so the test can fetch the real tool output.
const pipenvProjectScript = `set -e
pip install --quiet --disable-pip-version-check pipenv
mkdir -p /project && cd /project
cat > Pipfile <<'PIPFILE'
[[source]]
url = "https://pypi.org/simple"
verify_ssl = true
name = "pypi"

[packages]
requests = "==2.31.0"

[dev-packages]
iniconfig = "==2.0.0"
PIPFILE
PIPENV_VENV_IN_PROJECT=1 pipenv install --dev --quiet
pipenv graph --json > graph.json
exec python -m http.server 8080 --directory /project
`

func TestPipenvGraphWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startPipenvProject(ctx, t)
	t.Cleanup(cleanup)

	project := t.TempDir()
	for _, name := range []string{"Pipfile", "Pipfile.lock", "graph.json"} {
		require.NoError(t, downloadFile(ctx, endpoint+"/"+name, filepath.Join(project, name)))
	}

	data, err := os.ReadFile(filepath.Join(project, "graph.json"))
	require.NoError(t, err)
	graph, err := adapters.ParseDependencyGraph(data)
	require.NoError(t, err)
	require.Contains(t, graph, "requests")
	assert.ElementsMatch(t, []string{"certifi", "charset-normalizer", "idna", "urllib3"}, graph["requests"])

	direct := filepath.Join(project, "requirements.direct.txt")
	require.NoError(t, os.WriteFile(direct, []byte("requests\niniconfig\n"), 0644))
	result, err := app.NewService().Sync(ctx, app.SyncRequest{
		Root:      project,
		GraphFile: filepath.Join(project, "graph.json"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Report.Synced)
	assert.Equal(t, []string{"iniconfig"}, result.Report.Files[0].Pruned)

	reqs, err := adapters.NewRequirementsFileAdapter().Read(filepath.Join(project, "requirements.txt"))
	require.NoError(t, err)
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		names = append(names, req.PackageName)
	}
	assert.Equal(t, []string{"certifi", "charset-normalizer", "idna", "requests", "urllib3"}, names)
	assert.Equal(t, "requests==2.31.0", reqs[3].Line)
}

func startPipenvProject(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-slim",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"sh", "-c", pipenvProjectScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(5 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

func downloadFile(ctx context.Context, url string, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}
