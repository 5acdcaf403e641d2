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

// Dependency is one declared requirement of a package version: the target
// package and the range of versions that satisfy it.
type Dependency struct {
	Package Package
	Range   VersionSet
}

// DependencyProvider supplies package metadata to the solver. It is the
// only external collaboration of the core; implementations can serve from
// memory, the filesystem, or a registry.
//
// The solver assumes referential stability: within one solve, repeated
// calls with equal arguments return equal results.
type DependencyProvider interface {
	// ListVersions returns all known versions of a package ordered from
	// most preferred to least preferred; the solver picks the first
	// version satisfying its constraint. An unknown package is an
	// UnknownPackageError, not an empty list.
	ListVersions(pkg Package) ([]Version, error)

	// GetDependencies returns the dependencies declared by a package
	// version. A version with no dependencies returns an empty list; an
	// unknown version returns a VersionNotFoundError.
	GetDependencies(pkg Package, version Version) ([]Dependency, error)
}

// VersionChooser is an optional fast path a DependencyProvider may
// implement to propose a preferred version for a term directly. A hint
// outside the term's admitted versions is discarded and the solver falls
// back to filtering ListVersions.
type VersionChooser interface {
	ChooseVersion(pkg Package, term Term) (Version, bool)
}
