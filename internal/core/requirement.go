package core

import (
	"regexp"
	"strings"

	"pipsync/internal/types"
)

// vcsRequirement matches editable and plain VCS lines such as
// "-e git+https://host/repo.git@main#egg=pkg".
var vcsRequirement = regexp.MustCompile(`^(?:-e )?git\+.*#egg=(?P<package>.*)$`)

// ParseRequirementLine builds a Requirement from one requirements.txt line.
// The egg fragment of a VCS line takes precedence over a "==" split; a line
// without "==" names the package as a whole.
func ParseRequirementLine(line string) types.Requirement {
	line = strings.TrimRight(line, "\r\n")
	if match := vcsRequirement.FindStringSubmatch(line); match != nil {
		return types.Requirement{
			PackageName: match[vcsRequirement.SubexpIndex("package")],
			Line:        line,
		}
	}
	name, _, _ := strings.Cut(line, string(types.ConstraintOpEq2))
	return types.Requirement{PackageName: strings.TrimSpace(name), Line: line}
}

// RequirementFromLockEntry renders a Pipfile.lock entry as a requirement
// line. A version wins over a git source; an entry with neither degrades to
// the bare package name.
func RequirementFromLockEntry(name string, entry types.LockEntry) types.Requirement {
	if entry.Version != "" {
		return types.Requirement{PackageName: name, Line: name + entry.Version}
	}
	if entry.Git != "" {
		var builder strings.Builder
		if entry.Editable {
			builder.WriteString("-e ")
		}
		builder.WriteString("git+")
		builder.WriteString(entry.Git)
		if entry.Ref != "" {
			builder.WriteString("@")
			builder.WriteString(entry.Ref)
		}
		builder.WriteString("#egg=")
		builder.WriteString(name)
		return types.Requirement{PackageName: name, Line: builder.String()}
	}
	return types.Requirement{PackageName: name, Line: name}
}

// IsVCSRequirement reports whether line is a git-sourced requirement.
func IsVCSRequirement(line string) bool {
	return vcsRequirement.MatchString(strings.TrimRight(line, "\r\n"))
}
