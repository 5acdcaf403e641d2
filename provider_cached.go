// Copyright 2025 The pubgrub-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pubgrub

// CachedProvider memoizes another provider's answers. Wrap expensive
// providers in one: the solver's decision lookahead re-reads version lists
// and dependency lists, and the cache also pins down the referential
// stability the solver assumes.
//
// Errors are cached alongside results, so a failing lookup is not retried
// within the cache's lifetime.
type CachedProvider struct {
	inner DependencyProvider

	versions map[Name]versionsCacheEntry
	deps     map[packageVersionKey]depsCacheEntry
}

type versionsCacheEntry struct {
	versions []Version
	err      error
}

type depsCacheEntry struct {
	deps []Dependency
	err  error
}

// NewCachedProvider wraps a provider with memoization.
func NewCachedProvider(inner DependencyProvider) *CachedProvider {
	return &CachedProvider{
		inner:    inner,
		versions: make(map[Name]versionsCacheEntry),
		deps:     make(map[packageVersionKey]depsCacheEntry),
	}
}

// ListVersions implements DependencyProvider.
func (c *CachedProvider) ListVersions(pkg Package) ([]Version, error) {
	if entry, ok := c.versions[pkg.name]; ok {
		return entry.versions, entry.err
	}
	versions, err := c.inner.ListVersions(pkg)
	c.versions[pkg.name] = versionsCacheEntry{versions: versions, err: err}
	return versions, err
}

// GetDependencies implements DependencyProvider.
func (c *CachedProvider) GetDependencies(pkg Package, version Version) ([]Dependency, error) {
	key := packageVersionKey{name: pkg.name, version: version}
	if entry, ok := c.deps[key]; ok {
		return entry.deps, entry.err
	}
	deps, err := c.inner.GetDependencies(pkg, version)
	c.deps[key] = depsCacheEntry{deps: deps, err: err}
	return deps, err
}

// ChooseVersion forwards the optional fast path when the wrapped provider
// implements it.
func (c *CachedProvider) ChooseVersion(pkg Package, term Term) (Version, bool) {
	if chooser, ok := c.inner.(VersionChooser); ok {
		return chooser.ChooseVersion(pkg, term)
	}
	return Version{}, false
}

// Clear drops every cached answer.
func (c *CachedProvider) Clear() {
	clear(c.versions)
	clear(c.deps)
}

var (
	_ DependencyProvider = (*CachedProvider)(nil)
	_ VersionChooser     = (*CachedProvider)(nil)
)
