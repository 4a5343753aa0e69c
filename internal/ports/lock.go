package ports

import "pipsync/internal/types"

// LockPort exposes the fully resolved requirement for every locked package.
type LockPort interface {
	Default() (map[string]types.Requirement, error)
	Dev() (map[string]types.Requirement, error)
}
