package adapters

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pipsync/internal/ports"
	"pipsync/internal/shared"
)

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

// FindRequirementFiles walks root and returns every readable file called
// name. Hidden directories are never entered; exclude names directories
// that are skipped as well, relative to root unless absolute.
func (a WorkspaceAdapter) FindRequirementFiles(root string, name string, exclude []string) ([]string, error) {
	var paths []string
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	skipped := excludedDirs(root, exclude)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if shouldSkipWorkspaceDir(d.Name()) {
				return filepath.SkipDir
			}
			if _, ok := skipped[filepath.Clean(path)]; ok {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == name && shared.IsReadableFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan workspace").
			WithCause(err)
	}
	return paths, nil
}

func shouldSkipWorkspaceDir(name string) bool {
	return strings.HasPrefix(name, ".")
}

func excludedDirs(root string, exclude []string) map[string]struct{} {
	out := make(map[string]struct{}, len(exclude))
	for _, dir := range exclude {
		dir = strings.TrimSpace(dir)
		if filepath.IsAbs(dir) {
			out[filepath.Clean(dir)] = struct{}{}
			continue
		}
		dir = strings.Trim(dir, string(filepath.Separator))
		if dir == "" {
			continue
		}
		out[filepath.Join(root, dir)] = struct{}{}
	}
	return out
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
