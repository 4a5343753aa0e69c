package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pipsync/internal/core"
	"pipsync/internal/shared"
	"pipsync/internal/types"
)

// Sync regenerates the requirements.txt next to every source requirements
// file found below the project root.
func (s Service) Sync(ctx context.Context, req SyncRequest) (SyncResult, error) {
	logger := log.Ctx(ctx)
	root, err := s.resolveRoot(ctx, req)
	if err != nil {
		return SyncResult{}, err
	}
	manifest, err := s.OpenManifest(filepath.Join(root, pipfileName))
	if err != nil {
		return SyncResult{}, err
	}
	lock, err := s.OpenLock(filepath.Join(root, pipfileLockName))
	if err != nil {
		return SyncResult{}, err
	}

	sourceName := directRequirementsName
	if req.InPlace {
		sourceName = requirementsName
	}
	files, err := s.Workspace.FindRequirementFiles(root, sourceName, req.Exclude)
	if err != nil {
		return SyncResult{}, err
	}
	if len(files) == 0 {
		return SyncResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no %s files found", sourceName))
	}

	policy := types.SyncPolicy{
		Force:      req.Force,
		InPlace:    req.InPlace,
		IncludeDev: req.IncludeDev,
	}
	reconciler := core.NewReconciler(manifest, lock, s.OpenGraph(root, req.Pipenv, req.GraphFile), policy)
	report := types.SyncReport{
		Root:        root,
		SourceName:  sourceName,
		Force:       req.Force,
		InPlace:     req.InPlace,
		IncludeDev:  req.IncludeDev,
		DryRun:      req.DryRun,
		GeneratedAt: timeNow(s.Clock).Format(time.RFC3339),
	}
	for _, path := range files {
		file, err := s.syncFile(ctx, reconciler, path, req.DryRun)
		if err != nil {
			return SyncResult{}, err
		}
		switch file.Status {
		case types.FileStatusSynced:
			report.Synced++
		case types.FileStatusUnchanged:
			report.Unchanged++
		case types.FileStatusSkipped:
			report.Skipped++
		}
		report.Files = append(report.Files, file)
	}
	logger.Info().
		Int("changed", report.Synced).
		Int("unchanged", report.Unchanged).
		Bool("dry_run", req.DryRun).
		Msg(fmt.Sprintf("synced %d files | skipped %d files", report.Synced+report.Unchanged, report.Skipped))

	if reportPath := strings.TrimSpace(req.ReportPath); reportPath != "" {
		if err := s.ReportWriter.WriteReport(reportPath, report); err != nil {
			return SyncResult{}, err
		}
	}
	return SyncResult{Report: report}, nil
}

func (s Service) syncFile(ctx context.Context, reconciler core.Reconciler, path string, dryRun bool) (types.FileReport, error) {
	logger := log.Ctx(ctx).With().Str("file", path).Logger()
	output := filepath.Join(filepath.Dir(path), requirementsName)
	file := types.FileReport{Source: path, Output: output}

	existing, err := s.Requirements.Read(path)
	if err != nil {
		return types.FileReport{}, err
	}
	result, err := reconciler.Reconcile(ctx, existing)
	if err != nil {
		return types.FileReport{}, err
	}
	for _, pruned := range result.Pruned {
		file.Pruned = append(file.Pruned, pruned.Name)
	}
	if len(result.Lines) == 0 {
		logger.Debug().Msg("no requirements to write, skipping")
		file.Status = types.FileStatusSkipped
		return file, nil
	}
	file.Lines = len(result.Lines)

	var previous []types.Requirement
	if shared.IsReadableFile(output) {
		previous, err = s.Requirements.Read(output)
		if err != nil {
			return types.FileReport{}, err
		}
	}
	file.Changes = core.DiffRequirements(previous, result.Lines)
	file.Status = types.FileStatusSynced
	if slices.Equal(requirementLines(previous), result.Lines) {
		file.Status = types.FileStatusUnchanged
	}
	if dryRun {
		logger.Debug().Str("status", string(file.Status)).Msg("dry run, not writing")
		return file, nil
	}
	if err := s.Requirements.Write(output, result.Lines); err != nil {
		return types.FileReport{}, err
	}
	logger.Info().Str("output", output).Int("lines", file.Lines).Msg("requirements synced")
	return file, nil
}

// resolveRoot returns the absolute project root. An explicit path may point
// at the Pipfile or Pipfile.lock itself; without one pipenv is asked for the project home.
func (s Service) resolveRoot(ctx context.Context, req SyncRequest) (string, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		where, err := s.OpenLocator(req.Pipenv).Where(ctx)
		if err != nil {
			return "", err
		}
		root = where
	}
	root = shared.ExpandHome(root)
	if base := filepath.Base(root); base == pipfileName || base == pipfileLockName {
		root = filepath.Dir(root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid project path %s", root)).
			WithCause(err)
	}
	return abs, nil
}

func requirementLines(reqs []types.Requirement) []string {
	lines := make([]string, 0, len(reqs))
	for _, req := range reqs {
		lines = append(lines, req.Line)
	}
	return lines
}
