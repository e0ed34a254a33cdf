package ports

// StartupLocator resolves a startup file name to an existing path.
type StartupLocator interface {
	Locate(name string) (string, error)
}
