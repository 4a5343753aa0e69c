package adapters

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pipsync/internal/ports"
	"pipsync/internal/shared"
	"pipsync/internal/types"
)

const defaultPipenvBinary = "pipenv"

// PipenvGraphAdapter provides the installed dependency graph of a pipenv
// project, either by running `pipenv graph --json` in Root or by reading a
// previously captured graph from GraphFile. The graph is loaded at most once.
type PipenvGraphAdapter struct {
	Root      string
	Binary    string
	GraphFile string
	cached    map[string][]string
	loaded    bool
}

func NewPipenvGraphAdapter(root string, binary string, graphFile string) *PipenvGraphAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = defaultPipenvBinary
	}
	return &PipenvGraphAdapter{
		Root:      root,
		Binary:    binary,
		GraphFile: graphFile,
	}
}

func (a *PipenvGraphAdapter) DependencyMap(ctx context.Context) (map[string][]string, error) {
	if a.loaded {
		return a.cached, nil
	}
	var data []byte
	var err error
	if a.GraphFile != "" {
		data, err = os.ReadFile(a.GraphFile)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("dependency graph file not found").
				WithCause(err)
		}
	} else {
		data, err = a.runGraph(ctx)
		if err != nil {
			return nil, err
		}
	}
	graph, err := ParseDependencyGraph(data)
	if err != nil {
		return nil, err
	}
	a.cached = graph
	a.loaded = true
	return graph, nil
}

func (a *PipenvGraphAdapter) runGraph(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, a.Binary, "graph", "--json")
	cmd.Dir = a.Root
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("pipenv graph failed").
			WithCause(shared.CommandError([]byte(stderr.String()), err))
	}
	return output, nil
}

// ParseDependencyGraph turns `pipenv graph --json` output into a map from
// each installed package to the names of its direct dependencies.
func ParseDependencyGraph(data []byte) (map[string][]string, error) {
	var entries []types.GraphEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pipenv graph output is invalid").
			WithCause(err)
	}
	graph := make(map[string][]string, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Package.PackageName)
		if name == "" {
			continue
		}
		deps := make([]string, 0, len(entry.Dependencies))
		for _, dep := range entry.Dependencies {
			deps = append(deps, dep.PackageName)
		}
		graph[name] = deps
	}
	return graph, nil
}

// PipenvLocatorAdapter asks pipenv for the project root of the current
// working directory.
type PipenvLocatorAdapter struct {
	Binary string
}

func NewPipenvLocatorAdapter(binary string) PipenvLocatorAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = defaultPipenvBinary
	}
	return PipenvLocatorAdapter{Binary: binary}
}

func (a PipenvLocatorAdapter) Where(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, a.Binary, "--where")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("pipenv --where failed").
			WithCause(shared.CommandError(output, err))
	}
	root := strings.TrimSpace(string(output))
	if root == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("pipenv did not report a project root")
	}
	return root, nil
}

var (
	_ ports.DependencyGraphPort = (*PipenvGraphAdapter)(nil)
	_ ports.ProjectLocatorPort  = PipenvLocatorAdapter{}
)
