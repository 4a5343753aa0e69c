package core

import "pipsync/internal/types"

// MergeRequirements overlays overlay onto base and returns a new map. Names
// present in both take the overlay's requirement; neither input is modified.
func MergeRequirements(base map[string]types.Requirement, overlay map[string]types.Requirement) map[string]types.Requirement {
	merged := make(map[string]types.Requirement, len(base)+len(overlay))
	for name, req := range base {
		merged[name] = req
	}
	for name, req := range overlay {
		merged[name] = req
	}
	return merged
}
