package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// allowListedEnvVars are the system variables inherited by the runner.
// Node tooling needs a little more than a bare shell: module lookup, npm
// caches, proxies and the Windows system paths.
var allowListedEnvVars = map[string]struct{}{
	"HOME":                {},
	"USER":                {},
	"PATH":                {},
	"TERM":                {},
	"TMPDIR":              {},
	"TEMP":                {},
	"TMP":                 {},
	"CI":                  {},
	"NO_COLOR":            {},
	"FORCE_COLOR":         {},
	"NODE_PATH":           {},
	"NODE_OPTIONS":        {},
	"NODE_EXTRA_CA_CERTS": {},
	"npm_config_cache":    {},
	"npm_config_registry": {},
	"HTTP_PROXY":          {},
	"HTTPS_PROXY":         {},
	"NO_PROXY":            {},
	"APPDATA":             {},
	"LOCALAPPDATA":        {},
	"USERPROFILE":         {},
	"SystemRoot":          {},
	"ComSpec":             {},
	"PATHEXT":             {},
}

// listVars are prepended to rather than replaced when overridden.
var listVars = map[string]struct{}{
	"PATH":      {},
	"NODE_PATH": {},
}

// resolveEnvironment merges the allow-listed system environment with
// overrides. The result is sorted so runs are reproducible.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)

	for k, v := range overrides {
		if _, isList := listVars[k]; isList {
			if existing := envMap[k]; existing != "" {
				v = v + string(os.PathListSeparator) + existing
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}
	return envMap
}

// lookPath searches for an executable in the PATH of env rather than of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
