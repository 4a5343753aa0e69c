package ports

import "pipsync/internal/types"

type RequirementsFilePort interface {
	Read(path string) ([]types.Requirement, error)
	// Write replaces path with the given lines, newline-joined with a
	// trailing newline. The file is either fully written or left untouched.
	Write(path string, lines []string) error
}
