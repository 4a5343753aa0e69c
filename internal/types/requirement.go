package types

// Requirement maps a package name to the exact requirements.txt line that
// represents it.
type Requirement struct {
	PackageName string
	Line        string
}

// LockEntry is a single package entry of a Pipfile.lock section.
type LockEntry struct {
	Version  string `json:"version,omitempty"`
	Git      string `json:"git,omitempty"`
	Ref      string `json:"ref,omitempty"`
	Editable bool   `json:"editable,omitempty"`
}

// GraphPackage identifies a package node in `pipenv graph --json` output.
type GraphPackage struct {
	PackageName      string `json:"package_name"`
	Key              string `json:"key,omitempty"`
	InstalledVersion string `json:"installed_version,omitempty"`
	RequiredVersion  string `json:"required_version,omitempty"`
}

// GraphEntry is one element of the `pipenv graph --json` array.
type GraphEntry struct {
	Package      GraphPackage   `json:"package"`
	Dependencies []GraphPackage `json:"dependencies"`
}
