package adapters

import (
	"fmt"
	"maps"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"pipsync/internal/ports"
	"pipsync/internal/shared"
)

type pipfileDocument struct {
	Packages    map[string]any `toml:"packages"`
	DevPackages map[string]any `toml:"dev-packages"`
}

// PipfileAdapter reads the [packages] and [dev-packages] tables of a
// Pipfile. The file is parsed on first access and reused afterwards.
type PipfileAdapter struct {
	Path   string
	cached pipfileDocument
	loaded bool
}

func NewPipfileAdapter(path string) (*PipfileAdapter, error) {
	if !shared.IsReadableFile(path) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("Pipfile not found at path %s", path))
	}
	return &PipfileAdapter{Path: path}, nil
}

func (a *PipfileAdapter) DefaultPackages() (map[string]string, error) {
	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	return declaredPackages(doc.Packages), nil
}

func (a *PipfileAdapter) DevPackages() (map[string]string, error) {
	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	return declaredPackages(doc.DevPackages), nil
}

// AllPackages merges default and dev packages; dev entries win on a name
// collision.
func (a *PipfileAdapter) AllPackages() (map[string]string, error) {
	all, err := a.DefaultPackages()
	if err != nil {
		return nil, err
	}
	dev, err := a.DevPackages()
	if err != nil {
		return nil, err
	}
	maps.Copy(all, dev)
	return all, nil
}

func (a *PipfileAdapter) load() (pipfileDocument, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return pipfileDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("Pipfile not readable").
			WithCause(err)
	}
	var doc pipfileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return pipfileDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse Pipfile").
			WithCause(err)
	}
	a.cached = doc
	a.loaded = true
	return doc, nil
}

// declaredPackages flattens Pipfile values to their version specifier.
// Inline tables such as {version = ">=1", extras = ["x"]} contribute their
// version; tables without one (git, path) read as "*".
func declaredPackages(table map[string]any) map[string]string {
	out := make(map[string]string, len(table))
	for name, value := range table {
		switch v := value.(type) {
		case string:
			out[name] = v
		case map[string]any:
			if version, ok := v["version"].(string); ok {
				out[name] = version
				continue
			}
			out[name] = "*"
		default:
			out[name] = fmt.Sprint(v)
		}
	}
	return out
}

var _ ports.ManifestPort = (*PipfileAdapter)(nil)
