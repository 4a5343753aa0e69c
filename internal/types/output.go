package types

type SyncChange struct {
	Package string       `yaml:"package"`
	Action  ChangeAction `yaml:"action"`
	From    string       `yaml:"from,omitempty"`
	To      string       `yaml:"to,omitempty"`
}

type FileReport struct {
	Source  string       `yaml:"source"`
	Output  string       `yaml:"output"`
	Status  FileStatus   `yaml:"status"`
	Lines   int          `yaml:"lines"`
	Pruned  []string     `yaml:"pruned,omitempty"`
	Changes []SyncChange `yaml:"changes,omitempty"`
}

// SyncReport summarises a whole sync run. It is written as YAML when a
// report path is configured and read back by `pipsync inspect`.
type SyncReport struct {
	Root        string       `yaml:"root"`
	SourceName  string       `yaml:"source_name"`
	Force       bool         `yaml:"force"`
	InPlace     bool         `yaml:"in_place"`
	IncludeDev  bool         `yaml:"include_dev"`
	DryRun      bool         `yaml:"dry_run,omitempty"`
	GeneratedAt string       `yaml:"generated_at,omitempty"`
	Synced      int          `yaml:"synced"`
	Unchanged   int          `yaml:"unchanged"`
	Skipped     int          `yaml:"skipped"`
	Files       []FileReport `yaml:"files"`
}
