package ports

import "context"

// DependencyGraphPort exposes the direct sub-dependencies of every package
// known to the project environment. The map is a one-hop snapshot; a
// package without a key is unknown to the resolver.
type DependencyGraphPort interface {
	DependencyMap(ctx context.Context) (map[string][]string, error)
}

// ProjectLocatorPort finds the project root when none is given explicitly.
type ProjectLocatorPort interface {
	Where(ctx context.Context) (string, error)
}
