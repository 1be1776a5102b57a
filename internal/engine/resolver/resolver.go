// Package resolver turns a loosely-typed identifier and run options into the
// concrete suites and environment of a test run.
package resolver

import (
	"context"
	"strings"

	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver selects suites and environments from a loaded database.
type Resolver struct {
	prompter ports.Prompter
}

// New creates a Resolver that falls back to prompter for interactive selection.
func New(prompter ports.Prompter) *Resolver {
	return &Resolver{prompter: prompter}
}

// ResolveSuites returns the suites identifier stands for.
//
// An empty identifier means none was given: in CI mode nothing is returned,
// otherwise the user is asked to choose. An empty result is not an error.
func (r *Resolver) ResolveSuites(
	ctx context.Context,
	db *domain.Database,
	identifier string,
	ci bool,
) ([]domain.TestSuite, error) {
	if identifier == "" {
		if ci {
			return nil, nil
		}
		suites, err := r.prompter.SelectSuites(ctx, db)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to select test suites")
		}
		return suites, nil
	}

	match, err := Lookup(db, identifier)
	if err != nil {
		return nil, err
	}
	return match.Suites(db), nil
}

// Lookup resolves identifier against API specs, workspaces and suites, in that order.
// Ids match exactly or by prefix; names and spec file names match exactly.
func Lookup(db *domain.Database, identifier string) (domain.Match, error) {
	spec, err := singleOrNone(domain.Filter(db.APISpecs, func(s domain.APISpec) bool {
		return matchIDish(s.ID, identifier) || s.FileName == identifier
	}), domain.MatchAPISpec.String(), identifier)
	if err != nil {
		return domain.Match{}, err
	}
	if spec != nil {
		if ws := workspaceByID(db, spec.ParentID); ws != nil {
			return domain.Match{Kind: domain.MatchAPISpec, Workspace: ws, APISpec: spec}, nil
		}
	}

	ws, err := singleOrNone(domain.Filter(db.Workspaces, func(w domain.Workspace) bool {
		return matchIDish(w.ID, identifier) || w.Name == identifier
	}), domain.MatchWorkspace.String(), identifier)
	if err != nil {
		return domain.Match{}, err
	}
	if ws != nil {
		return domain.Match{Kind: domain.MatchWorkspace, Workspace: ws}, nil
	}

	suite, err := singleOrNone(domain.Filter(db.TestSuites, func(s domain.TestSuite) bool {
		return matchIDish(s.ID, identifier) || s.Name == identifier
	}), domain.MatchSuite.String(), identifier)
	if err != nil {
		return domain.Match{}, err
	}
	if suite != nil {
		return domain.Match{Kind: domain.MatchSuite, Suite: suite}, nil
	}

	return domain.Match{Kind: domain.MatchNone}, nil
}

// ResolveEnvironment returns the environment to run with, or nil when none can be identified.
//
// Environments are scoped to workspaceID: its base environment and the base's sub environments.
func (r *Resolver) ResolveEnvironment(
	ctx context.Context,
	db *domain.Database,
	workspaceID, envName string,
	ci bool,
) (*domain.Environment, error) {
	base, subs, err := ScopedEnvironments(db, workspaceID)
	if err != nil || base == nil {
		return nil, err
	}

	if envName != "" {
		candidates := append([]domain.Environment{*base}, subs...)
		return singleOrNone(domain.Filter(candidates, func(e domain.Environment) bool {
			return matchIDish(e.ID, envName) || e.Name == envName
		}), "environment", envName)
	}

	if ci {
		return defaultEnvironment(base, subs), nil
	}

	choices := subs
	if len(choices) == 0 {
		choices = []domain.Environment{*base}
	}
	if len(choices) == 1 {
		return &choices[0], nil
	}

	env, err := r.prompter.SelectEnvironment(ctx, choices)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to select environment")
	}
	return env, nil
}

// ScopedEnvironments returns the base environment of workspaceID and its sub environments.
// base is nil when the workspace has no environment.
func ScopedEnvironments(
	db *domain.Database,
	workspaceID string,
) (base *domain.Environment, subs []domain.Environment, err error) {
	if workspaceID == "" {
		return nil, nil, nil
	}

	base, err = singleOrNone(domain.Filter(db.Environments, func(e domain.Environment) bool {
		return e.ParentID == workspaceID
	}), "base environment", workspaceID)
	if err != nil || base == nil {
		return nil, nil, err
	}

	baseID := base.ID
	subs = domain.Filter(db.Environments, func(e domain.Environment) bool {
		return e.ParentID == baseID
	})
	return base, subs, nil
}

// Payloads pairs every suite with its unit tests in load order.
func Payloads(db *domain.Database, suites []domain.TestSuite) []domain.SuitePayload {
	payloads := make([]domain.SuitePayload, 0, len(suites))
	for _, suite := range suites {
		tests := db.TestsOf(suite.ID)
		payload := domain.SuitePayload{
			Name:  suite.Name,
			Tests: make([]domain.TestPayload, 0, len(tests)),
		}
		for _, t := range tests {
			payload.Tests = append(payload.Tests, domain.TestPayload{
				Name:             t.Name,
				Code:             t.Code,
				DefaultRequestID: t.RequestID,
			})
		}
		payloads = append(payloads, payload)
	}
	return payloads
}

// defaultEnvironment picks an environment without asking: the only sub
// environment, or the base when there are none.
func defaultEnvironment(base *domain.Environment, subs []domain.Environment) *domain.Environment {
	switch len(subs) {
	case 0:
		return base
	case 1:
		return &subs[0]
	default:
		return nil
	}
}

func workspaceByID(db *domain.Database, id string) *domain.Workspace {
	for i := range db.Workspaces {
		if db.Workspaces[i].ID == id {
			return &db.Workspaces[i]
		}
	}
	return nil
}

func matchIDish(id, identifier string) bool {
	return identifier != "" && strings.HasPrefix(id, identifier)
}

func singleOrNone[T any](items []T, kind, identifier string) (*T, error) {
	switch len(items) {
	case 0:
		return nil, nil
	case 1:
		return &items[0], nil
	default:
		err := zerr.With(domain.ErrAmbiguousIdentifier, "identifier", identifier)
		err = zerr.With(err, "kind", kind)
		return nil, zerr.With(err, "count", len(items))
	}
}
