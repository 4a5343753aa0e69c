package app

import (
	"time"

	"pipsync/internal/types"
)

const (
	pipfileName            = "Pipfile"
	pipfileLockName        = "Pipfile.lock"
	requirementsName       = "requirements.txt"
	directRequirementsName = "requirements.direct.txt"
)

type SyncRequest struct {
	Root       string
	Force      bool
	InPlace    bool
	IncludeDev bool
	Exclude    []string
	Pipenv     string
	GraphFile  string
	ReportPath string
	DryRun     bool
}

type SyncResult struct {
	Report types.SyncReport
}

type InspectRequest struct {
	ReportPath string
}

type InspectFileSummary struct {
	Output  string
	Status  types.FileStatus
	Lines   int
	Pruned  int
	Changes int
}

type InspectActionCount struct {
	Action types.ChangeAction
	Count  int
}

type InspectResult struct {
	Root        string
	GeneratedAt time.Time
	DryRun      bool
	Synced      int
	Unchanged   int
	Skipped     int
	Files       []InspectFileSummary
	Actions     []InspectActionCount
}
