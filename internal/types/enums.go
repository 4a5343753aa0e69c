package types

type ConstraintOp string

const (
	ConstraintOpNone      ConstraintOp = ""
	ConstraintOpEq        ConstraintOp = "="
	ConstraintOpEq2       ConstraintOp = "=="
	ConstraintOpArbitrary ConstraintOp = "==="
	ConstraintOpNe        ConstraintOp = "!="
	ConstraintOpCompat    ConstraintOp = "~="
	ConstraintOpGte       ConstraintOp = ">="
	ConstraintOpLte       ConstraintOp = "<="
	ConstraintOpGt        ConstraintOp = ">"
	ConstraintOpLt        ConstraintOp = "<"
)

// PruneReason explains why an existing requirement was left out of the
// generated output.
type PruneReason string

const (
	PruneReasonForceRemoved        PruneReason = "force-removed"
	PruneReasonDevSkipped          PruneReason = "dev-skipped"
	PruneReasonMissingFromManifest PruneReason = "missing-from-manifest"
)

type ChangeAction string

const (
	ChangeActionAdded      ChangeAction = "added"
	ChangeActionRemoved    ChangeAction = "removed"
	ChangeActionUpgraded   ChangeAction = "upgraded"
	ChangeActionDowngraded ChangeAction = "downgraded"
	ChangeActionChanged    ChangeAction = "changed"
)

type FileStatus string

const (
	FileStatusSynced    FileStatus = "synced"
	FileStatusUnchanged FileStatus = "unchanged"
	FileStatusSkipped   FileStatus = "skipped"
)
