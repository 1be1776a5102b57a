package domain

// Built-in reporters understood natively by the runner.
const (
	ReporterDot      = "dot"
	ReporterList     = "list"
	ReporterSpec     = "spec"
	ReporterMin      = "min"
	ReporterProgress = "progress"

	// DefaultReporter is used when no reporter is requested.
	DefaultReporter = ReporterSpec
)

var builtinReporters = map[string]struct{}{
	ReporterDot:      {},
	ReporterList:     {},
	ReporterSpec:     {},
	ReporterMin:      {},
	ReporterProgress: {},
}

// BuiltinReporters returns the built-in reporter names in display order.
func BuiltinReporters() []string {
	return []string{ReporterDot, ReporterList, ReporterSpec, ReporterMin, ReporterProgress}
}

// IsExternalReporter reports whether name must be resolved by the runner's own
// reporter loading. An empty name falls back to DefaultReporter and is never external.
func IsExternalReporter(name string) bool {
	if name == "" {
		return false
	}
	_, ok := builtinReporters[name]
	return !ok
}
