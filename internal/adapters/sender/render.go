package sender

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"go.trai.ch/inso/internal/core/domain"
)

// placeholder matches {{ name }} and {{ _.name }}; dotted names reach into nested objects.
var placeholder = regexp.MustCompile(`\{\{\s*(?:_\.)?([A-Za-z0-9_\-]+(?:\.[A-Za-z0-9_\-]+)*)\s*\}\}`)

// variables returns the data visible to requests sent in env: the base
// environment's data overlaid with env's own.
func variables(db *domain.Database, env *domain.Environment) map[string]any {
	vars := make(map[string]any)
	if parent := db.EnvironmentByID(env.ParentID); parent != nil {
		maps.Copy(vars, parent.Data)
	}
	maps.Copy(vars, env.Data)
	return vars
}

// render substitutes placeholders in s. Unknown names are left as written.
func render(s string, vars map[string]any) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		v, ok := lookup(vars, name)
		if !ok {
			return match
		}
		return fmt.Sprint(v)
	})
}

func lookup(vars map[string]any, name string) (any, bool) {
	var current any = vars
	for _, part := range strings.Split(name, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}
