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

import (
	"fmt"
	"strings"
)

// IncompatibilityKind records where an incompatibility came from.
type IncompatibilityKind int

const (
	// KindRoot seeds the solve: the root package must be its pinned version.
	KindRoot IncompatibilityKind = iota
	// KindDependency encodes that a (package, version) requires a
	// dependency within a range.
	KindDependency
	// KindNoVersions records that the provider has no version inside a
	// required set.
	KindNoVersions
	// KindDerived marks a clause learned by resolving two parents.
	KindDerived
)

// Incompatibility is a clause over at most one term per package asserting
// that the conjunction of its terms cannot hold. Incompatibilities are
// immutable once constructed; derived ones point at their two parents,
// forming the derivation DAG that explains a failed solve.
type Incompatibility struct {
	// Terms of the clause, in a deterministic order, one per package.
	Terms []Term
	Kind  IncompatibilityKind

	// Cause1 and Cause2 are the parents of a KindDerived clause.
	Cause1 *Incompatibility
	Cause2 *Incompatibility

	// Package and Version describe the dependent side of a KindDependency
	// clause.
	Package Package
	Version Version
}

// NewRootIncompatibility builds the seed clause {not (root == version)},
// which forces the root package to its pinned version.
func NewRootIncompatibility(root Package, version Version) *Incompatibility {
	return &Incompatibility{
		Terms: []Term{NewNegativeTerm(root, SingletonVersionSet(version))},
		Kind:  KindRoot,
	}
}

// NewDependencyIncompatibility encodes "pkg version depends on dep within
// set" as the clause {pkg == version, not (dep in set)}. A self-dependency
// collapses to the single term {pkg in ({version} minus set)}: empty when
// the version satisfies itself, forbidding the version otherwise.
func NewDependencyIncompatibility(pkg Package, version Version, dep Package, set VersionSet) *Incompatibility {
	if dep.name == pkg.name {
		merged := SingletonVersionSet(version).Intersection(set.Complement())
		return &Incompatibility{
			Terms:   []Term{NewTerm(pkg, merged)},
			Kind:    KindDependency,
			Package: pkg,
			Version: version,
		}
	}
	return &Incompatibility{
		Terms: []Term{
			NewTerm(pkg, SingletonVersionSet(version)),
			NewNegativeTerm(dep, set),
		},
		Kind:    KindDependency,
		Package: pkg,
		Version: version,
	}
}

// NewNoVersionsIncompatibility records that no version of term's package
// inside term's set exists: the clause {term}.
func NewNoVersionsIncompatibility(term Term) *Incompatibility {
	return &Incompatibility{
		Terms: []Term{term},
		Kind:  KindNoVersions,
	}
}

// newDerivedIncompatibility builds a learned clause from conflict
// resolution. Duplicate terms per package must already be merged by the
// caller; the order of terms is preserved for stable explanations.
func newDerivedIncompatibility(terms []Term, cause1, cause2 *Incompatibility) *Incompatibility {
	return &Incompatibility{
		Terms:  terms,
		Kind:   KindDerived,
		Cause1: cause1,
		Cause2: cause2,
	}
}

// termFor returns the clause's term for a package, if present.
func (inc *Incompatibility) termFor(pkg Package) (Term, bool) {
	for _, t := range inc.Terms {
		if t.Package.name == pkg.name {
			return t, true
		}
	}
	return Term{}, false
}

// dependencyTerm returns the positive form of the dependency side of a
// KindDependency clause.
func (inc *Incompatibility) dependencyTerm() (Term, bool) {
	if inc.Kind != KindDependency || len(inc.Terms) != 2 {
		return Term{}, false
	}
	dep := inc.Terms[1]
	if dep.Package.name == inc.Package.name {
		dep = inc.Terms[0]
	}
	if !dep.Positive {
		dep = dep.Negate()
	}
	return dep, true
}

// String renders the clause for diagnostics. The Reporter implementations
// produce the full derivation explanation; this is the one-line form.
func (inc *Incompatibility) String() string {
	switch inc.Kind {
	case KindRoot:
		if len(inc.Terms) == 1 {
			if v, ok := inc.Terms[0].Set.singletonVersion(); ok {
				return fmt.Sprintf("%s is %s", inc.Terms[0].Package.Name(), v)
			}
		}
	case KindDependency:
		if dep, ok := inc.dependencyTerm(); ok {
			return fmt.Sprintf("%s %s depends on %s", inc.Package.Name(), inc.Version, dep)
		}
	case KindNoVersions:
		if len(inc.Terms) == 1 {
			return fmt.Sprintf("no versions of %s satisfy %s", inc.Terms[0].Package.Name(), inc.Terms[0].Set)
		}
	}

	if len(inc.Terms) == 0 {
		return "version solving failed"
	}
	if len(inc.Terms) == 1 {
		return fmt.Sprintf("%s is forbidden", inc.Terms[0])
	}

	parts := make([]string, len(inc.Terms))
	for i, t := range inc.Terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s are incompatible", strings.Join(parts, " and "))
}
