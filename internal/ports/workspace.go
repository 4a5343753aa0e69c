package ports

// WorkspacePort discovers requirements files within a project root.
type WorkspacePort interface {
	FindRequirementFiles(root string, name string, exclude []string) ([]string, error)
}
