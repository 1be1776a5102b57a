package datastore

// WithDefaultAppDataDir overrides the platform application data directory.
func (l *Loader) WithDefaultAppDataDir(dir string) *Loader {
	l.defaultAppDataDir = func() (string, error) { return dir, nil }
	return l
}
