package services

import (
	"sort"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// Resolver expands top-level requirements into their transitive closure.
// It is stateless and safe for concurrent use.
type Resolver struct{}

// NewResolver creates a new resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// pending is one requirement waiting on the worklist.
type pending struct {
	name  string
	label string
}

// Resolve returns the closure of top keyed by reference name.
//
// Requirements are expanded depth first in declaration order, and the first
// resolution of a name wins: a later occurrence with another label, or via
// another path, is ignored. Cycles terminate because a name is recorded before
// its own requirements are visited.
func (r *Resolver) Resolve(top domain.Requirements, catalog *domain.Catalog) (map[string]domain.ResolvedRequirement, error) {
	resolved := make(map[string]domain.ResolvedRequirement)

	stack := make([]pending, 0, len(top))
	stack = pushReversed(stack, top)

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, done := resolved[next.name]; done {
			continue
		}

		entry, ok := catalog.Lookup(next.name)
		if !ok {
			return nil, &domain.UnknownReferenceError{Name: next.name}
		}

		spec, err := SelectVersion(entry, next.label)
		if err != nil {
			return nil, err
		}

		resolved[next.name] = domain.NewResolvedRequirement(next.name, spec)
		stack = pushReversed(stack, spec.Require)
	}

	return resolved, nil
}

// ResolveConfiguration merges the require sections of every version block of
// cfg, first declaration wins, and resolves them in one pass.
func (r *Resolver) ResolveConfiguration(cfg *domain.Configuration, catalog *domain.Catalog) (map[string]domain.ResolvedRequirement, error) {
	if len(cfg.Versions) == 0 {
		return nil, domain.ErrEmptyVersionSet
	}
	return r.Resolve(cfg.Requirements(), catalog)
}

// pushReversed pushes reqs so that the first declared requirement is popped first.
func pushReversed(stack []pending, reqs domain.Requirements) []pending {
	for i := len(reqs) - 1; i >= 0; i-- {
		stack = append(stack, pending{name: reqs[i].Name, label: reqs[i].Version})
	}
	return stack
}

// SelectVersion picks the version of entry matching label.
//
// The wildcard prefers an explicit "*" version and otherwise falls back to
// firstDeclaredVersion. Any other label must match exactly.
func SelectVersion(entry domain.CatalogEntry, label string) (domain.VersionSpec, error) {
	if label == domain.WildcardVersion {
		if spec, ok := entry.Versions.Get(domain.WildcardVersion); ok {
			return spec, nil
		}
		if version, ok := firstDeclaredVersion(entry.Versions); ok {
			return version.Spec, nil
		}
		return domain.VersionSpec{}, &domain.UnknownVersionError{Name: entry.Name, Version: label}
	}

	if spec, ok := entry.Versions.Get(label); ok {
		return spec, nil
	}
	return domain.VersionSpec{}, &domain.UnknownVersionError{Name: entry.Name, Version: label}
}

// firstDeclaredVersion stands in for "latest". Labels are not compared, so
// the version listed first in the descriptor is taken. Version ranges are
// not supported.
func firstDeclaredVersion(versions domain.VersionSet) (domain.Version, bool) {
	return versions.First()
}

// sortedResolved returns the closure as a slice ordered by name.
func sortedResolved(resolved map[string]domain.ResolvedRequirement) []domain.ResolvedRequirement {
	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.ResolvedRequirement, len(names))
	for i, name := range names {
		out[i] = resolved[name]
	}
	return out
}
