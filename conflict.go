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

// resolveConflict is the conflict-driven clause learning step. Starting
// from a violated incompatibility it repeatedly resolves against the cause
// of the most recent satisfying assignment until the clause can be made
// unit by backtracking. It returns the clause to propagate from: the
// learned clause, or the original conflict when no resolution step was
// needed. The partial solution is already rewound and a newly learned
// clause recorded.
//
// Deriving the empty clause means no assignment can exist; that escapes as
// a NoSolutionError carrying the derivation root.
func (st *solveState) resolveConflict(conflict *Incompatibility) (*Incompatibility, error) {
	st.stats.Conflicts++
	st.debug("resolving conflict", "conflict", conflict)

	learned := false
	for {
		if len(conflict.Terms) == 0 {
			return nil, NewNoSolutionError(conflict)
		}

		satisfier, satisfiedTerm := st.partial.satisfier(conflict)
		if satisfier == nil {
			// The clause holds with no assignments at all; nothing to
			// undo, the instance is unsolvable.
			return nil, NewNoSolutionError(conflict)
		}
		previousLevel := st.partial.previousSatisfierLevel(conflict, satisfier)

		if satisfier.isDecision() || previousLevel < satisfier.level {
			st.partial.backtrack(previousLevel)
			if learned {
				st.record(conflict)
				st.stats.LearnedClauses++
			}
			st.debug("backtracked",
				"level", previousLevel,
				"learned", conflict,
				"unit", satisfiedTerm.Package.Name(),
			)
			return conflict, nil
		}

		conflict = resolveIncompatibilities(conflict, satisfier.cause, satisfiedTerm.Package)
		learned = true
	}
}

// resolveIncompatibilities performs Boolean resolution of two clauses on a
// shared package: the union of their term maps minus the shared package.
// Terms landing on the same surviving package merge by intersection; a term
// whose merge comes up empty drops out of the derived clause.
func resolveIncompatibilities(conflict, cause *Incompatibility, shared Package) *Incompatibility {
	merged := make([]Term, 0, len(conflict.Terms)+len(cause.Terms))
	for _, t := range conflict.Terms {
		if t.Package.name == shared.name {
			continue
		}
		merged = append(merged, t)
	}

	for _, t := range cause.Terms {
		if t.Package.name == shared.name {
			continue
		}
		slot := -1
		for i := range merged {
			if merged[i].Package.name == t.Package.name {
				slot = i
				break
			}
		}
		if slot < 0 {
			merged = append(merged, t)
			continue
		}
		merged[slot] = merged[slot].Intersect(t)
	}

	// A term admitting nothing makes the conjunction vacuously false;
	// drop its package from the clause.
	terms := merged[:0]
	for _, t := range merged {
		if !t.impliedSet().IsEmpty() {
			terms = append(terms, t)
		}
	}

	return newDerivedIncompatibility(terms, conflict, cause)
}
