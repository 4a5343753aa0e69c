package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"pipsync/internal/types"
)

func TestParseRequirementLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want types.Requirement
	}{
		{
			name: "pinned",
			line: "foo==1.2.3",
			want: types.Requirement{PackageName: "foo", Line: "foo==1.2.3"},
		},
		{
			name: "trailing newline stripped",
			line: "foo==1.2.3\n",
			want: types.Requirement{PackageName: "foo", Line: "foo==1.2.3"},
		},
		{
			name: "editable git",
			line: "-e git+https://x/y.git@abc#egg=pkg",
			want: types.Requirement{PackageName: "pkg", Line: "-e git+https://x/y.git@abc#egg=pkg"},
		},
		{
			name: "plain git",
			line: "git+https://x/y.git#egg=pkg\n",
			want: types.Requirement{PackageName: "pkg", Line: "git+https://x/y.git#egg=pkg"},
		},
		{
			name: "git wins over pin",
			line: "git+https://x/y.git@v==2#egg=pkg",
			want: types.Requirement{PackageName: "pkg", Line: "git+https://x/y.git@v==2#egg=pkg"},
		},
		{
			name: "bare name",
			line: "requests",
			want: types.Requirement{PackageName: "requests", Line: "requests"},
		},
		{
			name: "range keeps whole line as name",
			line: "requests>=2.0",
			want: types.Requirement{PackageName: "requests>=2.0", Line: "requests>=2.0"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseRequirementLine(tt.line)); diff != "" {
				t.Fatalf("unexpected requirement (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRequirementFromLockEntry(t *testing.T) {
	tests := []struct {
		name  string
		pkg   string
		entry types.LockEntry
		want  string
	}{
		{
			name:  "version",
			pkg:   "foo",
			entry: types.LockEntry{Version: "==2.0"},
			want:  "foo==2.0",
		},
		{
			name:  "editable git with ref",
			pkg:   "bar",
			entry: types.LockEntry{Git: "https://x", Editable: true, Ref: "main"},
			want:  "-e git+https://x@main#egg=bar",
		},
		{
			name:  "git without ref",
			pkg:   "bar",
			entry: types.LockEntry{Git: "https://x"},
			want:  "git+https://x#egg=bar",
		},
		{
			name:  "version wins over git",
			pkg:   "baz",
			entry: types.LockEntry{Version: "==1.0", Git: "https://x"},
			want:  "baz==1.0",
		},
		{
			name:  "neither",
			pkg:   "qux",
			entry: types.LockEntry{},
			want:  "qux",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := RequirementFromLockEntry(tt.pkg, tt.entry)
			assert.Equal(t, tt.pkg, req.PackageName)
			assert.Equal(t, tt.want, req.Line)
			// The package name must survive a trip through the line parser.
			assert.Equal(t, tt.pkg, ParseRequirementLine(req.Line).PackageName)
		})
	}
}

func TestIsVCSRequirement(t *testing.T) {
	assert.True(t, IsVCSRequirement("-e git+https://x#egg=a"))
	assert.True(t, IsVCSRequirement("git+ssh://git@host/a.git#egg=a\n"))
	assert.False(t, IsVCSRequirement("a==1.0"))
	assert.False(t, IsVCSRequirement("git+https://x"))
}
