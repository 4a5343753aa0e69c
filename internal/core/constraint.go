package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pipsync/internal/types"
)

// opTokens is the ordered list of specifier operators tried during parsing.
// Longer tokens must precede shorter ones ("===" before "==" before "=").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpArbitrary,
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpCompat,
	types.ConstraintOpNe,
	types.ConstraintOpEq2,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// ParseConstraint splits a requirement such as "requests[socks]==2.31.0 ;
// python_version >= '3.8'" into name, operator and version. Extras and
// environment markers are dropped. Without an operator the constraint is a
// bare name reference with ConstraintOpNone.
func ParseConstraint(raw string, source string) (types.Constraint, error) {
	raw = strings.TrimSpace(raw)
	if marker := strings.Index(raw, ";"); marker >= 0 {
		raw = strings.TrimSpace(raw[:marker])
	}
	if raw == "" {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty constraint")
	}
	for _, op := range opTokens {
		name, version, found := strings.Cut(raw, string(op))
		if !found {
			continue
		}
		name = stripExtras(strings.TrimSpace(name))
		version = strings.TrimSpace(version)
		if name == "" || version == "" {
			return types.Constraint{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid constraint: %s", raw))
		}
		return types.Constraint{
			Name:    name,
			Op:      op,
			Version: version,
			Source:  source,
		}, nil
	}
	return types.Constraint{
		Name:   stripExtras(raw),
		Op:     types.ConstraintOpNone,
		Source: source,
	}, nil
}

func stripExtras(name string) string {
	if idx := strings.Index(name, "["); idx >= 0 {
		return strings.TrimSpace(name[:idx])
	}
	return name
}
