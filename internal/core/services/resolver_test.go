package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// req builds a requirement list from name/label pairs.
func req(pairs ...string) domain.Requirements {
	reqs := make(domain.Requirements, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		reqs = append(reqs, domain.Requirement{Name: pairs[i], Version: pairs[i+1]})
	}
	return reqs
}

// entry builds a catalog entry with a single "*" version.
func entry(name, file string, requires domain.Requirements) domain.CatalogEntry {
	return domain.CatalogEntry{
		Name: name,
		Versions: domain.VersionSet{
			{Label: "*", Spec: domain.VersionSpec{
				Require:   requires,
				File:      file,
				PrefixURI: "http://example.org/" + name + "#",
			}},
		},
	}
}

func newCatalog(t *testing.T, entries ...domain.CatalogEntry) *domain.Catalog {
	t.Helper()
	catalog, err := domain.NewCatalog(entries...)
	require.NoError(t, err)
	return catalog
}

func cyclicCatalog(t *testing.T) *domain.Catalog {
	return newCatalog(t,
		entry("foo/bar1", "bar1.ttl", req("foo/bar2", "*")),
		entry("foo/bar2", "bar2.ttl", req("foo/bar1", "*", "foo/bar3", "*")),
		entry("foo/bar3", "bar3.ttl", req("foo/bar2", "*")),
	)
}

func TestResolver_CyclicScenario(t *testing.T) {
	resolved, err := NewResolver().Resolve(req("foo/bar1", "*"), cyclicCatalog(t))
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedRequirement{
		"foo/bar1": {Name: "foo/bar1", File: "bar1.ttl", PrefixURI: "http://example.org/foo/bar1#", Format: "ttl"},
		"foo/bar2": {Name: "foo/bar2", File: "bar2.ttl", PrefixURI: "http://example.org/foo/bar2#", Format: "ttl"},
		"foo/bar3": {Name: "foo/bar3", File: "bar3.ttl", PrefixURI: "http://example.org/foo/bar3#", Format: "ttl"},
	}, resolved)
}

func TestResolver_TwoNodeCycle(t *testing.T) {
	catalog := newCatalog(t,
		entry("a/a", "a.ttl", req("b/b", "*")),
		entry("b/b", "b.ttl", req("a/a", "*")),
	)

	resolved, err := NewResolver().Resolve(req("a/a", "*"), catalog)
	require.NoError(t, err)

	assert.Len(t, resolved, 2)
	assert.Contains(t, resolved, "a/a")
	assert.Contains(t, resolved, "b/b")
}

func TestResolver_SelfReference(t *testing.T) {
	catalog := newCatalog(t, entry("a/a", "a.ttl", req("a/a", "*")))

	resolved, err := NewResolver().Resolve(req("a/a", "*"), catalog)
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestResolver_Idempotent(t *testing.T) {
	resolver := NewResolver()
	catalog := cyclicCatalog(t)

	first, err := resolver.Resolve(req("foo/bar1", "*"), catalog)
	require.NoError(t, err)
	second, err := resolver.Resolve(req("foo/bar1", "*"), catalog)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolver_ClosureSize(t *testing.T) {
	// A diamond plus an unreachable entry.
	catalog := newCatalog(t,
		entry("top/app", "app.ttl", req("lib/left", "*", "lib/right", "*")),
		entry("lib/left", "left.ttl", req("lib/base", "*")),
		entry("lib/right", "right.ttl", req("lib/base", "*")),
		entry("lib/base", "base.ttl", nil),
		entry("lib/unused", "unused.ttl", nil),
	)

	tests := []struct {
		name     string
		top      domain.Requirements
		expected []string
	}{
		{"diamond", req("top/app", "*"), []string{"lib/base", "lib/left", "lib/right", "top/app"}},
		{"leaf", req("lib/base", "*"), []string{"lib/base"}},
		{"branch", req("lib/right", "*"), []string{"lib/base", "lib/right"}},
		{"overlapping tops", req("lib/left", "*", "lib/right", "*"), []string{"lib/base", "lib/left", "lib/right"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := NewResolver().Resolve(tt.top, catalog)
			require.NoError(t, err)

			names := []string{}
			for _, r := range sortedResolved(resolved) {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestResolver_DeepChain(t *testing.T) {
	const depth = 5000
	entries := make([]domain.CatalogEntry, depth)
	for i := 0; i < depth; i++ {
		var requires domain.Requirements
		if i+1 < depth {
			requires = req(chainName(i+1), "*")
		}
		entries[i] = entry(chainName(i), "x.ttl", requires)
	}

	resolved, err := NewResolver().Resolve(req(chainName(0), "*"), newCatalog(t, entries...))
	require.NoError(t, err)
	assert.Len(t, resolved, depth)
}

func chainName(i int) string {
	return "chain/n" + strconv.Itoa(i)
}

func TestResolver_UnknownReference(t *testing.T) {
	catalog := newCatalog(t, entry("a/a", "a.ttl", req("missing/dep", "*")))

	_, err := NewResolver().Resolve(req("a/a", "*"), catalog)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
	assert.Contains(t, err.Error(), "missing/dep")

	var refErr *domain.UnknownReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "missing/dep", refErr.Name)
}

func TestResolver_FirstResolutionWins(t *testing.T) {
	catalog := newCatalog(t,
		entry("app/one", "one.ttl", req("lib/dep", "2.0")),
		domain.CatalogEntry{
			Name: "lib/dep",
			Versions: domain.VersionSet{
				{Label: "1.0", Spec: domain.VersionSpec{File: "dep-1.ttl"}},
				{Label: "2.0", Spec: domain.VersionSpec{File: "dep-2.ttl"}},
			},
		},
	)

	// app/one is expanded before the sibling lib/dep requirement.
	resolved, err := NewResolver().Resolve(req("app/one", "*", "lib/dep", "1.0"), catalog)
	require.NoError(t, err)
	assert.Equal(t, "dep-2.ttl", resolved["lib/dep"].File)

	resolved, err = NewResolver().Resolve(req("lib/dep", "1.0", "app/one", "*"), catalog)
	require.NoError(t, err)
	assert.Equal(t, "dep-1.ttl", resolved["lib/dep"].File)
}

func TestResolver_KeepsDeclaredFormat(t *testing.T) {
	catalog := newCatalog(t, domain.CatalogEntry{
		Name: "w3c/rdf",
		Versions: domain.VersionSet{
			{Label: "*", Spec: domain.VersionSpec{File: "https://www.w3.org/rdf", FileFormat: "xml"}},
		},
	})

	resolved, err := NewResolver().Resolve(req("w3c/rdf", "*"), catalog)
	require.NoError(t, err)
	assert.Equal(t, domain.Format("xml"), resolved["w3c/rdf"].Format)
}

func TestSelectVersion(t *testing.T) {
	explicit := domain.CatalogEntry{
		Name: "w3c/owl",
		Versions: domain.VersionSet{
			{Label: "1.0", Spec: domain.VersionSpec{File: "owl-1.ttl"}},
			{Label: "*", Spec: domain.VersionSpec{File: "owl-star.ttl"}},
			{Label: "2.0", Spec: domain.VersionSpec{File: "owl-2.ttl"}},
		},
	}
	labelled := domain.CatalogEntry{
		Name: "w3c/rdf",
		Versions: domain.VersionSet{
			{Label: "1.1", Spec: domain.VersionSpec{File: "rdf-1.1.ttl"}},
			{Label: "1.0", Spec: domain.VersionSpec{File: "rdf-1.0.ttl"}},
		},
	}
	empty := domain.CatalogEntry{Name: "w3c/empty"}

	tests := []struct {
		name     string
		entry    domain.CatalogEntry
		label    string
		expected string
		wantErr  bool
	}{
		{"wildcard prefers explicit star", explicit, "*", "owl-star.ttl", false},
		{"exact label", explicit, "2.0", "owl-2.ttl", false},
		{"wildcard falls back to first declared", labelled, "*", "rdf-1.1.ttl", false},
		{"exact label among several", labelled, "1.0", "rdf-1.0.ttl", false},
		{"unknown label", labelled, "3.0", "", true},
		{"no versions", empty, "*", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := SelectVersion(tt.entry, tt.label)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownVersion)
				assert.Contains(t, err.Error(), tt.entry.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec.File)
		})
	}
}

func TestResolver_ResolveConfiguration(t *testing.T) {
	catalog := cyclicCatalog(t)

	t.Run("empty version set", func(t *testing.T) {
		_, err := NewResolver().ResolveConfiguration(&domain.Configuration{Name: "me/project"}, catalog)
		assert.ErrorIs(t, err, domain.ErrEmptyVersionSet)
	})

	t.Run("merges blocks", func(t *testing.T) {
		cfg := &domain.Configuration{
			Name: "me/project",
			Versions: domain.VersionSet{
				{Label: "1.0", Spec: domain.VersionSpec{Require: req("foo/bar3", "*")}},
				{Label: "2.0", Spec: domain.VersionSpec{Require: req("foo/bar1", "*")}},
			},
		}

		resolved, err := NewResolver().ResolveConfiguration(cfg, catalog)
		require.NoError(t, err)
		assert.Len(t, resolved, 3)
	})
}
