package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pipsync/internal/core"
	"pipsync/internal/ports"
	"pipsync/internal/types"
)

type RequirementsFileAdapter struct{}

func NewRequirementsFileAdapter() RequirementsFileAdapter {
	return RequirementsFileAdapter{}
}

// Read parses every non-blank line of a requirements file.
func (a RequirementsFileAdapter) Read(path string) ([]types.Requirement, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("requirements file not found").
			WithCause(err)
	}
	var reqs []types.Requirement
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		reqs = append(reqs, core.ParseRequirementLine(line))
	}
	return reqs, nil
}

// Write replaces path with one line per entry. The content is written to a
// temporary sibling first and renamed into place.
func (a RequirementsFileAdapter) Write(path string, lines []string) error {
	content := strings.Join(lines, "\n") + "\n"
	tmp, err := os.CreateTemp(filepath.Dir(path), ".requirements-*.tmp")
	if err != nil {
		return writeRequirementsError(err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return writeRequirementsError(err)
	}
	if err := tmp.Close(); err != nil {
		return writeRequirementsError(err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return writeRequirementsError(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return writeRequirementsError(err)
	}
	return nil
}

func writeRequirementsError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write requirements file").
		WithCause(err)
}

var _ ports.RequirementsFilePort = RequirementsFileAdapter{}
