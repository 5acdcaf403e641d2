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

import "fmt"

// Term is a signed constraint over one package. A positive term with set S
// is satisfied by selecting any version in S; a negative term with set S is
// satisfied by any selection outside S. Terms are the building blocks of
// incompatibilities and of the partial solution's assignment log.
type Term struct {
	Package  Package
	Set      VersionSet
	Positive bool
}

// NewTerm creates a positive term requiring the package to land in set.
func NewTerm(pkg Package, set VersionSet) Term {
	return Term{Package: pkg, Set: set, Positive: true}
}

// NewNegativeTerm creates a negative term excluding versions in set.
func NewNegativeTerm(pkg Package, set VersionSet) Term {
	return Term{Package: pkg, Set: set, Positive: false}
}

// Negate returns the logical negation of the term.
func (t Term) Negate() Term {
	return Term{Package: t.Package, Set: t.Set, Positive: !t.Positive}
}

// impliedSet is the set of versions the term admits: the set itself for a
// positive term, its complement for a negative one. All term algebra runs
// on implied sets.
func (t Term) impliedSet() VersionSet {
	if t.Positive {
		return t.Set
	}
	return t.Set.Complement()
}

// Intersect combines two terms on the same package into the term admitting
// exactly the versions both admit. Two negative terms stay negative (their
// excluded sets union) unless together they exclude every version; every
// other combination yields a positive term. A contradiction comes back as
// the canonical empty positive term.
func (t Term) Intersect(other Term) Term {
	if t.Package.name != other.Package.name {
		panic("pubgrub: intersecting terms of different packages")
	}

	if !t.Positive && !other.Positive {
		excluded := t.Set.Union(other.Set)
		if excluded.IsFull() {
			return NewTerm(t.Package, EmptyVersionSet())
		}
		return NewNegativeTerm(t.Package, excluded)
	}
	return NewTerm(t.Package, t.impliedSet().Intersection(other.impliedSet()))
}

// TermRelation classifies how one term constrains another.
type TermRelation int

const (
	// RelationSatisfies: every version the subject admits, the object
	// admits too.
	RelationSatisfies TermRelation = iota
	// RelationContradicts: the subject and object admit no version in
	// common.
	RelationContradicts
	// RelationInconclusive: neither of the above.
	RelationInconclusive
)

func (r TermRelation) String() string {
	switch r {
	case RelationSatisfies:
		return "satisfies"
	case RelationContradicts:
		return "contradicts"
	default:
		return "inconclusive"
	}
}

// Relation reports how t constrains other: Satisfies when t's implied set
// is a subset of other's, Contradicts when the implied sets are disjoint,
// Inconclusive otherwise.
func (t Term) Relation(other Term) TermRelation {
	self := t.impliedSet()
	them := other.impliedSet()
	if self.IsSubset(them) {
		return RelationSatisfies
	}
	if self.IsDisjoint(them) {
		return RelationContradicts
	}
	return RelationInconclusive
}

// SatisfiedBy reports whether an assignment term (always a positive
// singleton) satisfies t.
func (t Term) SatisfiedBy(assignment Term) bool {
	return assignment.impliedSet().IsSubset(t.impliedSet())
}

// String renders the term for explanations. Singleton sets collapse to the
// "==v" form; representation never feeds back into solver decisions.
func (t Term) String() string {
	name := t.Package.Name()
	set := t.Set.String()
	if v, ok := t.Set.singletonVersion(); ok {
		set = fmt.Sprintf("==%s", v)
	}

	if t.Positive {
		if t.Set.IsFull() {
			return name
		}
		return fmt.Sprintf("%s %s", name, set)
	}
	if t.Set.IsFull() {
		return fmt.Sprintf("not %s", name)
	}
	return fmt.Sprintf("not %s %s", name, set)
}
