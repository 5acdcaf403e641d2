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

import "slices"

type packageVersionKey struct {
	name    Name
	version Version
}

// InMemoryProvider is a DependencyProvider backed by in-memory maps, used
// for tests, scenarios, and as the materialization target of scenario
// files. Preference order is newest-first.
type InMemoryProvider struct {
	packages map[Name]Package
	versions map[Name][]Version
	deps     map[packageVersionKey][]Dependency
}

// NewInMemoryProvider creates an empty provider.
func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{
		packages: make(map[Name]Package),
		versions: make(map[Name][]Version),
		deps:     make(map[packageVersionKey][]Dependency),
	}
}

// AddPackage registers a package identity. Adding versions or dependencies
// registers the package implicitly, so this is only needed for packages
// that should exist with no versions.
func (p *InMemoryProvider) AddPackage(pkg Package) {
	if _, ok := p.packages[pkg.name]; !ok {
		p.packages[pkg.name] = pkg
		p.versions[pkg.name] = nil
	}
}

// AddVersion registers a version of a package, keeping the version list
// sorted. Duplicate versions are ignored.
func (p *InMemoryProvider) AddVersion(pkg Package, version Version) {
	p.AddPackage(pkg)
	list := p.versions[pkg.name]
	pos, found := slices.BinarySearchFunc(list, version, Version.Compare)
	if found {
		return
	}
	p.versions[pkg.name] = slices.Insert(list, pos, version)
}

// AddDependency declares that pkg at version depends on dep. The version is
// registered if it was not already.
func (p *InMemoryProvider) AddDependency(pkg Package, version Version, dep Dependency) {
	p.AddVersion(pkg, version)
	key := packageVersionKey{name: pkg.name, version: version}
	p.deps[key] = append(p.deps[key], dep)
}

// Package looks up a registered package identity by name.
func (p *InMemoryProvider) Package(name string) (Package, bool) {
	pkg, ok := p.packages[MakeName(name)]
	return pkg, ok
}

// ListVersions implements DependencyProvider; versions come back newest
// first.
func (p *InMemoryProvider) ListVersions(pkg Package) ([]Version, error) {
	list, ok := p.versions[pkg.name]
	if !ok {
		return nil, &UnknownPackageError{Package: pkg}
	}
	out := make([]Version, len(list))
	for i, v := range list {
		out[len(list)-1-i] = v
	}
	return out, nil
}

// GetDependencies implements DependencyProvider.
func (p *InMemoryProvider) GetDependencies(pkg Package, version Version) ([]Dependency, error) {
	list, ok := p.versions[pkg.name]
	if !ok {
		return nil, &UnknownPackageError{Package: pkg}
	}
	if _, found := slices.BinarySearchFunc(list, version, Version.Compare); !found {
		return nil, &VersionNotFoundError{Package: pkg, Version: version}
	}
	deps := p.deps[packageVersionKey{name: pkg.name, version: version}]
	return slices.Clone(deps), nil
}

var _ DependencyProvider = (*InMemoryProvider)(nil)
