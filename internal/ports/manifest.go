package ports

// ManifestPort exposes the directly declared packages of a project, split
// into default and development groups. Values are the declared version
// specifiers.
type ManifestPort interface {
	DefaultPackages() (map[string]string, error)
	DevPackages() (map[string]string, error)
	AllPackages() (map[string]string, error)
}
