package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports/mocks"
	"go.trai.ch/inso/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

func fixture() *domain.Database {
	return &domain.Database{
		Workspaces: []domain.Workspace{
			{ID: "wrk_123", Name: "W1"},
			{ID: "wrk_456", Name: "W2"},
		},
		APISpecs: []domain.APISpec{
			{ID: "spc_1", ParentID: "wrk_123", FileName: "petstore.yaml"},
		},
		TestSuites: []domain.TestSuite{
			{ID: "uts_a", ParentID: "wrk_123", Name: "Auth Suite"},
			{ID: "uts_b", ParentID: "wrk_123", Name: "Billing"},
			{ID: "uts_c", ParentID: "wrk_456", Name: "Other"},
		},
		UnitTests: []domain.UnitTest{
			{ID: "ut_1", ParentID: "uts_a", Name: "returns 200", Code: "expect(1).to.equal(1);", RequestID: "req_1"},
			{ID: "ut_2", ParentID: "uts_a", Name: "rejects bad token", Code: "expect(2).to.equal(2);"},
		},
		Environments: []domain.Environment{
			{ID: "env_base", ParentID: "wrk_123", Name: "Base"},
			{ID: "env_prod", ParentID: "env_base", Name: "Production"},
			{ID: "env_stage", ParentID: "env_base", Name: "Staging"},
			{ID: "env_w2", ParentID: "wrk_456", Name: "W2 Base"},
		},
	}
}

func suiteIDs(suites []domain.TestSuite) []string {
	ids := make([]string, 0, len(suites))
	for _, s := range suites {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestLookup(t *testing.T) {
	db := fixture()

	tests := []struct {
		name       string
		identifier string
		kind       domain.MatchKind
		suites     []string
	}{
		{"workspace by name", "W1", domain.MatchWorkspace, []string{"uts_a", "uts_b"}},
		{"workspace by full id", "wrk_456", domain.MatchWorkspace, []string{"uts_c"}},
		{"workspace by id prefix", "wrk_12", domain.MatchWorkspace, []string{"uts_a", "uts_b"}},
		{"api spec by file name", "petstore.yaml", domain.MatchAPISpec, []string{"uts_a", "uts_b"}},
		{"api spec by id", "spc_1", domain.MatchAPISpec, []string{"uts_a", "uts_b"}},
		{"suite by name", "Billing", domain.MatchSuite, []string{"uts_b"}},
		{"suite by id prefix", "uts_c", domain.MatchSuite, []string{"uts_c"}},
		{"nothing", "does-not-exist", domain.MatchNone, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := resolver.Lookup(db, tt.identifier)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, match.Kind)
			assert.Equal(t, tt.suites, suiteIDs(match.Suites(db)))
		})
	}
}

func TestLookup_Ambiguous(t *testing.T) {
	db := fixture()

	// Both workspaces share the "wrk_" prefix.
	_, err := resolver.Lookup(db, "wrk_")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrAmbiguousIdentifier.Error())
}

func TestLookup_OrphanSpecFallsThrough(t *testing.T) {
	db := &domain.Database{
		APISpecs:   []domain.APISpec{{ID: "spc_x", ParentID: "wrk_gone", FileName: "Lonely"}},
		TestSuites: []domain.TestSuite{{ID: "uts_1", Name: "Lonely"}},
	}

	match, err := resolver.Lookup(db, "Lonely")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchSuite, match.Kind)
}

func TestResolveSuites(t *testing.T) {
	t.Run("identifier resolves without prompting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		prompter := mocks.NewMockPrompter(ctrl)
		r := resolver.New(prompter)

		suites, err := r.ResolveSuites(context.Background(), fixture(), "W1", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"uts_a", "uts_b"}, suiteIDs(suites))
	})

	t.Run("unknown identifier is empty not an error", func(t *testing.T) {
		r := resolver.New(mocks.NewMockPrompter(gomock.NewController(t)))

		suites, err := r.ResolveSuites(context.Background(), fixture(), "nope", true)
		require.NoError(t, err)
		assert.Empty(t, suites)
	})

	t.Run("ci without identifier never prompts", func(t *testing.T) {
		r := resolver.New(mocks.NewMockPrompter(gomock.NewController(t)))

		suites, err := r.ResolveSuites(context.Background(), fixture(), "", true)
		require.NoError(t, err)
		assert.Empty(t, suites)
	})

	t.Run("interactive without identifier prompts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		prompter := mocks.NewMockPrompter(ctrl)
		db := fixture()
		prompter.EXPECT().SelectSuites(gomock.Any(), db).Return(db.TestSuites[2:], nil)

		suites, err := resolver.New(prompter).ResolveSuites(context.Background(), db, "", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"uts_c"}, suiteIDs(suites))
	})

	t.Run("prompt failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		prompter := mocks.NewMockPrompter(ctrl)
		prompter.EXPECT().SelectSuites(gomock.Any(), gomock.Any()).Return(nil, domain.ErrPromptAborted)

		_, err := resolver.New(prompter).ResolveSuites(context.Background(), fixture(), "", false)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to select test suites")
	})
}

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		workspaceID string
		envName     string
		want        string
	}{
		{"by sub environment name", "wrk_123", "Production", "env_prod"},
		{"by base environment name", "wrk_123", "Base", "env_base"},
		{"by id prefix", "wrk_123", "env_st", "env_stage"},
		{"name outside workspace scope", "wrk_123", "W2 Base", ""},
		{"unknown name", "wrk_123", "Nope", ""},
		{"workspace without environments", "wrk_none", "Production", ""},
		{"empty workspace id", "", "Production", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolver.New(mocks.NewMockPrompter(gomock.NewController(t)))

			env, err := r.ResolveEnvironment(context.Background(), fixture(), tt.workspaceID, tt.envName, true)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, env)
				return
			}
			require.NotNil(t, env)
			assert.Equal(t, tt.want, env.ID)
		})
	}
}

func TestResolveEnvironment_CIDefaults(t *testing.T) {
	base := domain.Environment{ID: "env_base", ParentID: "wrk_1", Name: "Base"}
	sub := func(id string) domain.Environment {
		return domain.Environment{ID: id, ParentID: "env_base", Name: id}
	}

	tests := []struct {
		name string
		envs []domain.Environment
		want string
	}{
		{"only base", []domain.Environment{base}, "env_base"},
		{"single sub", []domain.Environment{base, sub("env_a")}, "env_a"},
		{"several subs", []domain.Environment{base, sub("env_a"), sub("env_b")}, ""},
		{"no environments", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolver.New(mocks.NewMockPrompter(gomock.NewController(t)))
			db := &domain.Database{Environments: tt.envs}

			env, err := r.ResolveEnvironment(context.Background(), db, "wrk_1", "", true)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, env)
				return
			}
			require.NotNil(t, env)
			assert.Equal(t, tt.want, env.ID)
		})
	}
}

func TestResolveEnvironment_Interactive(t *testing.T) {
	t.Run("several subs prompt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		prompter := mocks.NewMockPrompter(ctrl)
		db := fixture()
		prompter.EXPECT().
			SelectEnvironment(gomock.Any(), gomock.Len(2)).
			DoAndReturn(func(_ context.Context, candidates []domain.Environment) (*domain.Environment, error) {
				return &candidates[1], nil
			})

		env, err := resolver.New(prompter).ResolveEnvironment(context.Background(), db, "wrk_123", "", false)
		require.NoError(t, err)
		require.NotNil(t, env)
		assert.Equal(t, "env_stage", env.ID)
	})

	t.Run("single candidate is chosen without prompting", func(t *testing.T) {
		r := resolver.New(mocks.NewMockPrompter(gomock.NewController(t)))

		env, err := r.ResolveEnvironment(context.Background(), fixture(), "wrk_456", "", false)
		require.NoError(t, err)
		require.NotNil(t, env)
		assert.Equal(t, "env_w2", env.ID)
	})

	t.Run("prompt failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		prompter := mocks.NewMockPrompter(ctrl)
		prompter.EXPECT().SelectEnvironment(gomock.Any(), gomock.Any()).Return(nil, errors.New("tty closed"))

		_, err := resolver.New(prompter).ResolveEnvironment(context.Background(), fixture(), "wrk_123", "", false)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to select environment")
	})
}

func TestResolveEnvironment_AmbiguousBase(t *testing.T) {
	db := &domain.Database{Environments: []domain.Environment{
		{ID: "env_1", ParentID: "wrk_1"},
		{ID: "env_2", ParentID: "wrk_1"},
	}}
	r := resolver.New(mocks.NewMockPrompter(gomock.NewController(t)))

	_, err := r.ResolveEnvironment(context.Background(), db, "wrk_1", "", true)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrAmbiguousIdentifier.Error())
}

func TestPayloads(t *testing.T) {
	db := fixture()

	payloads := resolver.Payloads(db, db.TestSuites[:2])
	require.Len(t, payloads, 2)

	assert.Equal(t, "Auth Suite", payloads[0].Name)
	assert.Equal(t, []domain.TestPayload{
		{Name: "returns 200", Code: "expect(1).to.equal(1);", DefaultRequestID: "req_1"},
		{Name: "rejects bad token", Code: "expect(2).to.equal(2);"},
	}, payloads[0].Tests)

	assert.Equal(t, "Billing", payloads[1].Name)
	assert.Empty(t, payloads[1].Tests)

	assert.Empty(t, resolver.Payloads(db, nil))
}
