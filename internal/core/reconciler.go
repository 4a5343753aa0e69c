package core

import (
	"context"
	"fmt"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pipsync/internal/ports"
	"pipsync/internal/types"
)

// Reconciler computes the requirement lines a requirements file should
// contain given the project's manifest, lock and dependency graph.
type Reconciler struct {
	Manifest ports.ManifestPort
	Lock     ports.LockPort
	Graph    ports.DependencyGraphPort
	Policy   types.SyncPolicy
}

func NewReconciler(manifest ports.ManifestPort, lock ports.LockPort, graph ports.DependencyGraphPort, policy types.SyncPolicy) Reconciler {
	return Reconciler{
		Manifest: manifest,
		Lock:     lock,
		Graph:    graph,
		Policy:   policy,
	}
}

// GenerateRequirements returns the sorted requirement lines to write for the
// given existing requirements, or nil when nothing should be written.
func (r Reconciler) GenerateRequirements(ctx context.Context, existing []types.Requirement) ([]string, error) {
	result, err := r.Reconcile(ctx, existing)
	if err != nil {
		return nil, err
	}
	return result.Lines, nil
}

// Reconcile seeds the closure with the existing requirements that are still
// declared in the manifest, expands each seed by exactly one hop of the
// dependency graph and applies the sync policy to whatever is left over.
//
// The lock decides the emitted line for every package it knows; existing
// lines are only used for packages the lock does not cover.
func (r Reconciler) Reconcile(ctx context.Context, existing []types.Requirement) (types.Reconciliation, error) {
	if r.Manifest == nil || r.Lock == nil || r.Graph == nil {
		return types.Reconciliation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("reconciler requires manifest, lock and graph ports")
	}
	logger := log.Ctx(ctx)

	existingMap := make(map[string]types.Requirement, len(existing))
	for _, req := range existing {
		existingMap[req.PackageName] = req
	}

	environment, err := r.environment()
	if err != nil {
		return types.Reconciliation{}, err
	}
	locked, err := r.lockedRequirements()
	if err != nil {
		return types.Reconciliation{}, err
	}
	versionMap := MergeRequirements(existingMap, locked)

	var roots []string
	for name := range existingMap {
		if _, ok := environment[name]; ok {
			roots = append(roots, name)
		}
	}
	sort.Strings(roots)

	closure := map[string]struct{}{}
	if len(roots) > 0 {
		graph, err := r.Graph.DependencyMap(ctx)
		if err != nil {
			return types.Reconciliation{}, err
		}
		for _, root := range roots {
			closure[root] = struct{}{}
			deps, ok := graph[root]
			if !ok {
				logger.Warn().Str("package", root).Msg("package not found in dependency graph")
				continue
			}
			for _, dep := range deps {
				closure[dep] = struct{}{}
			}
		}
	}

	result := types.Reconciliation{Roots: roots}
	if r.Policy.InPlace && !r.Policy.Force {
		// Rewriting a file in place is destructive, so nothing is dropped
		// unless forced.
		for name := range existingMap {
			closure[name] = struct{}{}
		}
	} else {
		pruned, err := r.prune(ctx, existingMap, closure)
		if err != nil {
			return types.Reconciliation{}, err
		}
		result.Pruned = pruned
	}

	result.Closure = sortedNames(closure)
	for _, name := range result.Closure {
		req, ok := versionMap[name]
		if !ok {
			return types.Reconciliation{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("package %s missing from version map", name))
		}
		assert.NotEmpty(ctx, req.Line, "requirement line must be set")
		result.Lines = append(result.Lines, req.Line)
	}
	logger.Debug().
		Int("roots", len(result.Roots)).
		Int("closure", len(result.Closure)).
		Int("pruned", len(result.Pruned)).
		Msg("requirements reconciled")
	return result, nil
}

// prune reports the existing requirements that fell out of the closure. The
// names are already absent from the closure; this only explains why.
func (r Reconciler) prune(ctx context.Context, existing map[string]types.Requirement, closure map[string]struct{}) ([]types.PrunedPackage, error) {
	logger := log.Ctx(ctx)
	var missing []string
	for name := range existing {
		if _, ok := closure[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}
	sort.Strings(missing)

	var devPackages map[string]string
	if !r.Policy.InPlace && !r.Policy.IncludeDev {
		var err error
		devPackages, err = r.Manifest.DevPackages()
		if err != nil {
			return nil, err
		}
	}

	pruned := make([]types.PrunedPackage, 0, len(missing))
	for _, name := range missing {
		reason := types.PruneReasonMissingFromManifest
		switch {
		case r.Policy.InPlace:
			reason = types.PruneReasonForceRemoved
			logger.Info().Str("package", name).Msg("force sync: package removed")
		case isDeclared(devPackages, name):
			reason = types.PruneReasonDevSkipped
			logger.Info().Str("package", name).Msg("skipping dev dependency")
		default:
			logger.Info().Str("package", name).Msg("missing dependency in Pipfile")
		}
		pruned = append(pruned, types.PrunedPackage{Name: name, Reason: reason})
	}
	return pruned, nil
}

func (r Reconciler) environment() (map[string]string, error) {
	if r.Policy.IncludeDev {
		return r.Manifest.AllPackages()
	}
	return r.Manifest.DefaultPackages()
}

func (r Reconciler) lockedRequirements() (map[string]types.Requirement, error) {
	locked, err := r.Lock.Default()
	if err != nil {
		return nil, err
	}
	if !r.Policy.IncludeDev {
		return locked, nil
	}
	dev, err := r.Lock.Dev()
	if err != nil {
		return nil, err
	}
	return MergeRequirements(locked, dev), nil
}

func isDeclared(packages map[string]string, name string) bool {
	_, ok := packages[name]
	return ok
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
