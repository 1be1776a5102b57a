package ports

// OutputSuppressor silences the process's standard output for the duration of a call.
//
//go:generate go run go.uber.org/mock/mockgen -source=suppressor.go -destination=mocks/mock_suppressor.go -package=mocks
type OutputSuppressor interface {
	// Suppress runs fn with standard output muted and restores it on every exit path,
	// including panics. It returns fn's error.
	Suppress(fn func() error) error
}
