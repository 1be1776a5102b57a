// Package detector decides whether the process runs unattended.
package detector

import (
	"os"

	"golang.org/x/term"
)

// DetectCI reports whether prompting is impossible: CI is set to true or 1,
// or stdin is not a terminal.
func DetectCI() bool {
	return isCI(os.Getenv, term.IsTerminal(int(os.Stdin.Fd())))
}

// ResolveCI combines an explicit --ci flag with detection; the flag can only force CI on.
func ResolveCI(flag bool) bool {
	return flag || DetectCI()
}

func isCI(getenv func(string) string, stdinTTY bool) bool {
	ci := getenv("CI")
	return ci == "true" || ci == "1" || !stdinTTY
}
