package adapters

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pipsync/internal/core"
	"pipsync/internal/ports"
	"pipsync/internal/shared"
	"pipsync/internal/types"
)

type lockDocument struct {
	Default map[string]types.LockEntry `json:"default"`
	Develop map[string]types.LockEntry `json:"develop"`
}

// PipfileLockAdapter exposes the resolved requirements of a Pipfile.lock.
// The file is parsed once and each section is converted once.
type PipfileLockAdapter struct {
	Path       string
	cached     lockDocument
	loaded     bool
	defaultReq map[string]types.Requirement
	devReq     map[string]types.Requirement
}

func NewPipfileLockAdapter(path string) (*PipfileLockAdapter, error) {
	if !shared.IsReadableFile(path) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("Pipfile.lock not found at path %s", path))
	}
	return &PipfileLockAdapter{Path: path}, nil
}

func (a *PipfileLockAdapter) Default() (map[string]types.Requirement, error) {
	if a.defaultReq != nil {
		return a.defaultReq, nil
	}
	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	a.defaultReq = lockRequirements(doc.Default)
	return a.defaultReq, nil
}

func (a *PipfileLockAdapter) Dev() (map[string]types.Requirement, error) {
	if a.devReq != nil {
		return a.devReq, nil
	}
	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	a.devReq = lockRequirements(doc.Develop)
	return a.devReq, nil
}

func (a *PipfileLockAdapter) load() (lockDocument, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return lockDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("Pipfile.lock not readable").
			WithCause(err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return lockDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse Pipfile.lock").
			WithCause(err)
	}
	if _, ok := raw.(map[string]any); !ok {
		return lockDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unexpected format of Pipfile.lock contents")
	}
	var doc lockDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return lockDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid Pipfile.lock package entry").
			WithCause(err)
	}
	a.cached = doc
	a.loaded = true
	return doc, nil
}

func lockRequirements(entries map[string]types.LockEntry) map[string]types.Requirement {
	out := make(map[string]types.Requirement, len(entries))
	for name, entry := range entries {
		out[name] = core.RequirementFromLockEntry(name, entry)
	}
	return out
}

var _ ports.LockPort = (*PipfileLockAdapter)(nil)
