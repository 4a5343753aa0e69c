package types

// SyncPolicy selects how existing requirements are reconciled against the
// manifest. InPlace without Force never drops an existing line.
type SyncPolicy struct {
	Force      bool
	InPlace    bool
	IncludeDev bool
}

type PrunedPackage struct {
	Name   string
	Reason PruneReason
}

// Reconciliation is the outcome of reconciling one requirements file.
type Reconciliation struct {
	Roots   []string
	Closure []string
	Lines   []string
	Pruned  []PrunedPackage
}
