package types

type Constraint struct {
	Name    string
	Op      ConstraintOp
	Version string
	Source  string
}
