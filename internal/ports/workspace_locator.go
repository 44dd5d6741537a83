package ports

// WorkspaceLocator finds a pipeline root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
