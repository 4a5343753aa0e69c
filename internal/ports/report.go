package ports

import "pipsync/internal/types"

type ReportWriterPort interface {
	WriteReport(path string, report types.SyncReport) error
}

type ReportReaderPort interface {
	ReadReport(path string) (types.SyncReport, error)
}
