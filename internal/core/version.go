package core

import (
	pep440 "github.com/aquasecurity/go-pep440-version"

	"pipsync/internal/types"
)

// versionCache memoizes parsed PEP 440 versions so a report over many files
// parses each distinct pin once.
type versionCache struct {
	pep map[string]pep440.Version
}

func newVersionCache() *versionCache {
	return &versionCache{pep: map[string]pep440.Version{}}
}

// pepVersion returns a parsed PEP 440 version, caching the result.
func (c *versionCache) pepVersion(value string) (pep440.Version, error) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.pep[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version strings. ok is false
// when either side is not a valid PEP 440 version.
func (c *versionCache) compare(a string, b string) (int, bool) {
	v1, err := c.pepVersion(a)
	if err != nil {
		return 0, false
	}
	v2, err := c.pepVersion(b)
	if err != nil {
		return 0, false
	}
	return v1.Compare(v2), true
}

// pinnedVersion extracts the exact version from a "name==x.y.z" line. VCS
// lines and ranges are not pins.
func pinnedVersion(line string) (string, bool) {
	if IsVCSRequirement(line) {
		return "", false
	}
	constraint, err := ParseConstraint(line, "requirements")
	if err != nil {
		return "", false
	}
	switch constraint.Op {
	case types.ConstraintOpEq2, types.ConstraintOpArbitrary:
		return constraint.Version, true
	default:
		return "", false
	}
}
