package app

import (
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pipsync/internal/types"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.ReportPath)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is required")
	}
	report, err := s.ReportReader.ReadReport(path)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{
		Root:        report.Root,
		GeneratedAt: parseReportTime(report.GeneratedAt),
		DryRun:      report.DryRun,
		Synced:      report.Synced,
		Unchanged:   report.Unchanged,
		Skipped:     report.Skipped,
	}
	actions := map[types.ChangeAction]int{}
	for _, file := range report.Files {
		result.Files = append(result.Files, InspectFileSummary{
			Output:  file.Output,
			Status:  file.Status,
			Lines:   file.Lines,
			Pruned:  len(file.Pruned),
			Changes: len(file.Changes),
		})
		for _, change := range file.Changes {
			actions[change.Action]++
		}
	}
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Output < result.Files[j].Output
	})
	result.Actions = summarizeActions(actions)
	return result, nil
}

func summarizeActions(actions map[types.ChangeAction]int) []InspectActionCount {
	out := make([]InspectActionCount, 0, len(actions))
	for action, count := range actions {
		out = append(out, InspectActionCount{Action: action, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Action < out[j].Action
	})
	return out
}
