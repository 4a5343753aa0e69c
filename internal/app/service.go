package app

import (
	"time"

	"pipsync/internal/adapters"
	"pipsync/internal/ports"
)

// Opener functions build the per-session readers. A fresh set is opened for
// every Sync so each run parses the manifest and lock once and resolves the
// dependency graph at most once.
type (
	ManifestOpener func(path string) (ports.ManifestPort, error)
	LockOpener     func(path string) (ports.LockPort, error)
	GraphOpener    func(root string, pipenv string, graphFile string) ports.DependencyGraphPort
	LocatorOpener  func(pipenv string) ports.ProjectLocatorPort
)

type Service struct {
	Workspace    ports.WorkspacePort
	Requirements ports.RequirementsFilePort
	ReportWriter ports.ReportWriterPort
	ReportReader ports.ReportReaderPort
	OpenManifest ManifestOpener
	OpenLock     LockOpener
	OpenGraph    GraphOpener
	OpenLocator  LocatorOpener
	Clock        func() time.Time
}

func NewService() Service {
	reports := adapters.NewReportFileAdapter()
	return Service{
		Workspace:    adapters.NewWorkspaceAdapter(),
		Requirements: adapters.NewRequirementsFileAdapter(),
		ReportWriter: reports,
		ReportReader: reports,
		OpenManifest: func(path string) (ports.ManifestPort, error) {
			return adapters.NewPipfileAdapter(path)
		},
		OpenLock: func(path string) (ports.LockPort, error) {
			return adapters.NewPipfileLockAdapter(path)
		},
		OpenGraph: func(root string, pipenv string, graphFile string) ports.DependencyGraphPort {
			return adapters.NewPipenvGraphAdapter(root, pipenv, graphFile)
		},
		OpenLocator: func(pipenv string) ports.ProjectLocatorPort {
			return adapters.NewPipenvLocatorAdapter(pipenv)
		},
		Clock: time.Now,
	}
}
