package core

import "pipsync/internal/types"

// DiffRequirements classifies how the generated lines differ from the
// previous contents of an output file. Identical lines are omitted; the
// result is sorted by package name.
func DiffRequirements(previous []types.Requirement, generated []string) []types.SyncChange {
	before := make(map[string]string, len(previous))
	for _, req := range previous {
		before[req.PackageName] = req.Line
	}
	after := make(map[string]string, len(generated))
	for _, line := range generated {
		req := ParseRequirementLine(line)
		after[req.PackageName] = req.Line
	}

	names := map[string]struct{}{}
	for name := range before {
		names[name] = struct{}{}
	}
	for name := range after {
		names[name] = struct{}{}
	}

	cache := newVersionCache()
	var changes []types.SyncChange
	for _, name := range sortedNames(names) {
		from, hadBefore := before[name]
		to, hasAfter := after[name]
		switch {
		case !hadBefore:
			changes = append(changes, types.SyncChange{Package: name, Action: types.ChangeActionAdded, To: to})
		case !hasAfter:
			changes = append(changes, types.SyncChange{Package: name, Action: types.ChangeActionRemoved, From: from})
		case from != to:
			changes = append(changes, types.SyncChange{
				Package: name,
				Action:  classifyChange(cache, from, to),
				From:    from,
				To:      to,
			})
		}
	}
	return changes
}

func classifyChange(cache *versionCache, from string, to string) types.ChangeAction {
	oldVersion, ok := pinnedVersion(from)
	if !ok {
		return types.ChangeActionChanged
	}
	newVersion, ok := pinnedVersion(to)
	if !ok {
		return types.ChangeActionChanged
	}
	cmp, ok := cache.compare(oldVersion, newVersion)
	if !ok {
		return types.ChangeActionChanged
	}
	switch {
	case cmp < 0:
		return types.ChangeActionUpgraded
	case cmp > 0:
		return types.ChangeActionDowngraded
	default:
		return types.ChangeActionChanged
	}
}
