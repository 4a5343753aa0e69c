package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pipsync/internal/ports"
	"pipsync/internal/types"
)

// ReportFileAdapter persists sync reports as YAML.
type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

func (a ReportFileAdapter) WriteReport(path string, report types.SyncReport) error {
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode sync report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sync report").
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) ReadReport(path string) (types.SyncReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SyncReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("sync report not found").
			WithCause(err)
	}
	var report types.SyncReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.SyncReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid sync report").
			WithCause(err)
	}
	return report, nil
}

var (
	_ ports.ReportWriterPort = ReportFileAdapter{}
	_ ports.ReportReaderPort = ReportFileAdapter{}
)
