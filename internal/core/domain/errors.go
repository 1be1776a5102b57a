package domain

import "go.trai.ch/zerr"

var (
	// ErrAmbiguousIdentifier is returned when more than one record of a kind matches an identifier.
	ErrAmbiguousIdentifier = zerr.New("identifier matches more than one record")

	// ErrDataStoreNotFound is returned when neither a git data dir nor an app data dir can be found.
	ErrDataStoreNotFound = zerr.New("could not find a data store")

	// ErrDataStoreReadFailed is returned when a data store file cannot be read.
	ErrDataStoreReadFailed = zerr.New("failed to read data store")

	// ErrDataStoreParseFailed is returned when a data store record cannot be decoded.
	ErrDataStoreParseFailed = zerr.New("failed to parse data store record")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrPromptAborted is returned when the user leaves an interactive prompt without choosing.
	ErrPromptAborted = zerr.New("prompt aborted")

	// ErrGenerateFailed is returned when the test file cannot be generated.
	ErrGenerateFailed = zerr.New("failed to generate test file")

	// ErrInvalidReporter is returned by a runner that cannot load the requested reporter.
	ErrInvalidReporter = zerr.New("invalid reporter")

	// ErrRunnerFailed is returned when the runner cannot be started or crashes.
	ErrRunnerFailed = zerr.New("test runner failed")

	// ErrRequestNotFound is returned when a test sends a request id that is not in the store.
	ErrRequestNotFound = zerr.New("request not found")

	// ErrEnvironmentNotFound is returned when a sender is bound to an unknown environment.
	ErrEnvironmentNotFound = zerr.New("environment not found")

	// ErrRequestFailed is returned when sending a request fails at the transport level.
	ErrRequestFailed = zerr.New("failed to send request")

	// ErrTestsFailed is returned to the CLI when a run completed without passing.
	ErrTestsFailed = zerr.New("test run failed")
)
