// Package domain contains the core records and value types of a test run.
package domain

// Record type discriminators as stored in the data store.
const (
	TypeWorkspace     = "Workspace"
	TypeAPISpec       = "ApiSpec"
	TypeUnitTestSuite = "UnitTestSuite"
	TypeUnitTest      = "UnitTest"
	TypeEnvironment   = "Environment"
	TypeRequest       = "Request"
)

// Workspace groups API specs, requests, suites and environments.
type Workspace struct {
	ID       string `json:"_id"      yaml:"_id"`
	Type     string `json:"type"     yaml:"type"`
	ParentID string `json:"parentId" yaml:"parentId"`
	Name     string `json:"name"     yaml:"name"`
	Scope    string `json:"scope"    yaml:"scope"`
}

// APISpec is the design document attached to a workspace.
type APISpec struct {
	ID       string `json:"_id"      yaml:"_id"`
	Type     string `json:"type"     yaml:"type"`
	ParentID string `json:"parentId" yaml:"parentId"`
	FileName string `json:"fileName" yaml:"fileName"`
	Contents string `json:"contents" yaml:"contents"`
}

// TestSuite is a named group of unit tests scoped to one workspace.
type TestSuite struct {
	ID       string `json:"_id"      yaml:"_id"`
	Type     string `json:"type"     yaml:"type"`
	ParentID string `json:"parentId" yaml:"parentId"`
	Name     string `json:"name"     yaml:"name"`
}

// UnitTest is a single executable test case owned by exactly one TestSuite.
type UnitTest struct {
	ID        string `json:"_id"       yaml:"_id"`
	Type      string `json:"type"      yaml:"type"`
	ParentID  string `json:"parentId"  yaml:"parentId"`
	Name      string `json:"name"      yaml:"name"`
	Code      string `json:"code"      yaml:"code"`
	RequestID string `json:"requestId" yaml:"requestId"`
}

// Environment is a named set of variables available to tests at run time.
//
// The environment whose ParentID is a workspace id is that workspace's base
// environment; sub environments have the base environment as parent.
type Environment struct {
	ID       string         `json:"_id"      yaml:"_id"`
	Type     string         `json:"type"     yaml:"type"`
	ParentID string         `json:"parentId" yaml:"parentId"`
	Name     string         `json:"name"     yaml:"name"`
	Data     map[string]any `json:"data"     yaml:"data"`
}

// Header is a single HTTP header of a stored request.
type Header struct {
	Name     string `json:"name"     yaml:"name"`
	Value    string `json:"value"    yaml:"value"`
	Disabled bool   `json:"disabled" yaml:"disabled"`
}

// RequestBody is the body of a stored request.
type RequestBody struct {
	MimeType string `json:"mimeType" yaml:"mimeType"`
	Text     string `json:"text"     yaml:"text"`
}

// Request is a stored HTTP request that unit tests may send.
type Request struct {
	ID       string      `json:"_id"      yaml:"_id"`
	Type     string      `json:"type"     yaml:"type"`
	ParentID string      `json:"parentId" yaml:"parentId"`
	Name     string      `json:"name"     yaml:"name"`
	Method   string      `json:"method"   yaml:"method"`
	URL      string      `json:"url"      yaml:"url"`
	Body     RequestBody `json:"body"     yaml:"body"`
	Headers  []Header    `json:"headers"  yaml:"headers"`
}

// Database is a read-only snapshot of the data store, loaded once at run start.
// Slices keep the order in which records were loaded.
type Database struct {
	Workspaces   []Workspace
	APISpecs     []APISpec
	TestSuites   []TestSuite
	UnitTests    []UnitTest
	Environments []Environment
	Requests     []Request
}

// Filter returns the records matching pred, preserving order.
func Filter[T any](records []T, pred func(T) bool) []T {
	var out []T
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// TestsOf returns the unit tests owned by the given suite in load order.
func (db *Database) TestsOf(suiteID string) []UnitTest {
	return Filter(db.UnitTests, func(t UnitTest) bool { return t.ParentID == suiteID })
}

// RequestByID returns the request with the given id, or nil.
func (db *Database) RequestByID(id string) *Request {
	for i := range db.Requests {
		if db.Requests[i].ID == id {
			return &db.Requests[i]
		}
	}
	return nil
}

// EnvironmentByID returns the environment with the given id, or nil.
func (db *Database) EnvironmentByID(id string) *Environment {
	for i := range db.Environments {
		if db.Environments[i].ID == id {
			return &db.Environments[i]
		}
	}
	return nil
}
