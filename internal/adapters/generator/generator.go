// Package generator renders suite payloads into a mocha test file.
package generator

import (
	"bytes"
	_ "embed"
	"strconv"
	"strings"
	"text/template"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed mocha.js.tmpl
var mochaTemplate string

// codeIndent is the indentation of test code inside an it() block.
const codeIndent = "    "

// Generator implements ports.Generator. It is stateless and safe for concurrent use.
type Generator struct {
	tmpl *template.Template
}

var _ ports.Generator = (*Generator)(nil)

// New creates a Generator.
func New() *Generator {
	tmpl := template.Must(template.New("mocha").Funcs(template.FuncMap{
		"quote":  quote,
		"indent": indent,
	}).Parse(mochaTemplate))

	return &Generator{tmpl: tmpl}
}

// Generate renders suites into a single test file named after its content hash.
// Equal inputs always produce byte-identical files.
func (g *Generator) Generate(suites []domain.SuitePayload) (domain.TestFile, error) {
	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, suites); err != nil {
		return domain.TestFile{}, zerr.Wrap(err, domain.ErrGenerateFailed.Error())
	}

	content := buf.Bytes()
	return domain.TestFile{
		Name:    strconv.FormatUint(xxhash.Sum64(content), 16) + ".test.js",
		Content: content,
	}, nil
}

// quote renders s as a single-quoted JavaScript string literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// indent prefixes every non-blank line of code with codeIndent.
func indent(code string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = codeIndent + line
	}
	return strings.Join(lines, "\n")
}
