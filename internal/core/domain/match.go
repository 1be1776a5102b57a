package domain

// MatchKind tags which record kind an identifier resolved to.
type MatchKind uint8

const (
	// MatchNone indicates the identifier matched nothing.
	MatchNone MatchKind = iota
	// MatchWorkspace indicates the identifier named a workspace.
	MatchWorkspace
	// MatchAPISpec indicates the identifier named an API spec; its workspace is attached.
	MatchAPISpec
	// MatchSuite indicates the identifier named a single test suite.
	MatchSuite
)

// String returns the lower-case name of the kind.
func (k MatchKind) String() string {
	switch k {
	case MatchWorkspace:
		return "workspace"
	case MatchAPISpec:
		return "api spec"
	case MatchSuite:
		return "test suite"
	default:
		return "none"
	}
}

// Match is the result of looking up a polymorphic identifier.
// Only the fields relevant to Kind are set.
type Match struct {
	Kind      MatchKind
	Workspace *Workspace
	APISpec   *APISpec
	Suite     *TestSuite
}

// Suites expands the match into the ordered suite set it stands for.
func (m Match) Suites(db *Database) []TestSuite {
	switch m.Kind {
	case MatchWorkspace, MatchAPISpec:
		wsID := m.Workspace.ID
		return Filter(db.TestSuites, func(s TestSuite) bool { return s.ParentID == wsID })
	case MatchSuite:
		return []TestSuite{*m.Suite}
	default:
		return nil
	}
}
