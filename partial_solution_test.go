package pubgrub

import "testing"

func TestPartialSolutionDecisionLevels(t *testing.T) {
	t.Parallel()

	ps := newPartialSolution()
	root := MakeRootPackage("root")
	foo := MakePackage("foo")
	bar := MakePackage("bar")

	if ps.decisionLevel() != 0 {
		t.Fatalf("fresh solution at level %d", ps.decisionLevel())
	}

	ps.addDerivation(NewTerm(root, SingletonVersionSet(v(t, "1.0.0"))), nil)
	if ps.decisionLevel() != 0 {
		t.Fatal("derivations must not change the decision level")
	}

	ps.addDecision(root, v(t, "1.0.0"))
	if ps.decisionLevel() != 1 {
		t.Fatalf("level after first decision = %d, want 1", ps.decisionLevel())
	}

	ps.addDerivation(NewTerm(foo, mustRange(t, ">=1.0.0")), nil)
	ps.addDecision(foo, v(t, "1.2.0"))
	if ps.decisionLevel() != 2 {
		t.Fatalf("level after second decision = %d, want 2", ps.decisionLevel())
	}

	ps.addDerivation(NewTerm(bar, mustRange(t, ">=1.0.0")), nil)
	for _, a := range ps.log {
		if a.level > ps.decisionLevel() {
			t.Fatalf("entry %s above current level", a.term)
		}
	}
}

func TestPartialSolutionAccumulates(t *testing.T) {
	t.Parallel()

	ps := newPartialSolution()
	foo := MakePackage("foo")

	if _, ok := ps.accumulated(foo); ok {
		t.Fatal("unconstrained package must have no accumulated set")
	}

	ps.addDerivation(NewTerm(foo, mustRange(t, ">=1.0.0")), nil)
	ps.addDerivation(NewTerm(foo, mustRange(t, "<2.0.0")), nil)
	acc, ok := ps.accumulated(foo)
	if !ok {
		t.Fatal("expected accumulated set")
	}
	if !acc.Equal(mustRange(t, ">=1.0.0, <2.0.0")) {
		t.Fatalf("accumulated = %s", acc)
	}

	// A negative derivation intersects with the complement.
	ps.addDerivation(NewNegativeTerm(foo, SingletonVersionSet(v(t, "1.5.0"))), nil)
	acc, _ = ps.accumulated(foo)
	if acc.Contains(v(t, "1.5.0")) {
		t.Fatal("excluded version still in accumulated set")
	}
	if !acc.Contains(v(t, "1.4.0")) || !acc.Contains(v(t, "1.6.0")) {
		t.Fatalf("accumulated lost versions it should keep: %s", acc)
	}
}

func TestPartialSolutionBacktrack(t *testing.T) {
	t.Parallel()

	ps := newPartialSolution()
	root := MakeRootPackage("root")
	foo := MakePackage("foo")
	bar := MakePackage("bar")

	ps.addDecision(root, v(t, "1.0.0"))                          // level 1
	ps.addDerivation(NewTerm(foo, mustRange(t, ">=1.0.0")), nil) // level 1
	ps.addDecision(foo, v(t, "1.0.0"))                           // level 2
	ps.addDerivation(NewTerm(bar, mustRange(t, ">=2.0.0")), nil) // level 2
	ps.addDecision(bar, v(t, "2.0.0"))                           // level 3

	ps.backtrack(1)

	if ps.decisionLevel() != 1 {
		t.Fatalf("level after backtrack = %d, want 1", ps.decisionLevel())
	}
	for _, a := range ps.log {
		if a.level > 1 {
			t.Fatalf("surviving entry %s has level %d", a.term, a.level)
		}
	}
	if ps.isDecided(foo) || ps.isDecided(bar) {
		t.Fatal("backtrack must undo decisions above the target level")
	}
	if !ps.isDecided(root) {
		t.Fatal("backtrack must keep decisions at or below the target level")
	}
	if _, ok := ps.accumulated(bar); ok {
		t.Fatal("bar's accumulated set must be gone")
	}
	acc, ok := ps.accumulated(foo)
	if !ok || !acc.Equal(mustRange(t, ">=1.0.0")) {
		t.Fatalf("foo accumulated after backtrack = %s, %v", acc, ok)
	}

	// Backtracking to a level above the current one is a no-op.
	before := len(ps.log)
	ps.backtrack(5)
	if len(ps.log) != before {
		t.Fatal("backtrack above current level must not drop entries")
	}
}

func TestPartialSolutionRelation(t *testing.T) {
	t.Parallel()

	ps := newPartialSolution()
	foo := MakePackage("foo")
	bar := MakePackage("bar")

	inc := NewDependencyIncompatibility(foo, v(t, "1.0.0"), bar, mustRange(t, ">=2.0.0"))

	// Nothing assigned: inconclusive (two undetermined terms).
	if rel, _ := ps.relation(inc); rel != relationInconclusive {
		t.Fatalf("relation on empty solution = %v", rel)
	}

	// foo decided at 1.0.0: almost satisfied, unit is the bar term.
	ps.addDecision(foo, v(t, "1.0.0"))
	rel, unit := ps.relation(inc)
	if rel != relationAlmostSatisfied {
		t.Fatalf("relation = %v, want almost satisfied", rel)
	}
	if unit == nil || !unit.Package.Equal(bar) {
		t.Fatalf("unit term = %v, want bar's", unit)
	}

	// bar constrained inside the forbidden range: fully satisfied.
	ps.addDerivation(NewTerm(bar, mustRange(t, ">=1.0.0, <2.0.0")), nil)
	if rel, _ := ps.relation(inc); rel != relationSatisfied {
		t.Fatalf("relation = %v, want satisfied", rel)
	}

	// A different foo version contradicts the clause.
	other := newPartialSolution()
	other.addDecision(foo, v(t, "2.0.0"))
	if rel, _ := other.relation(inc); rel != relationContradicted {
		t.Fatalf("relation = %v, want contradicted", rel)
	}
}

// Satisfaction is monotone along the log: once a prefix satisfies an
// incompatibility, every longer prefix does too, and the satisfier is the
// entry completing the earliest satisfying prefix.
func TestPartialSolutionSatisfier(t *testing.T) {
	t.Parallel()

	ps := newPartialSolution()
	foo := MakePackage("foo")
	bar := MakePackage("bar")

	inc := NewDependencyIncompatibility(foo, v(t, "1.0.0"), bar, mustRange(t, ">=2.0.0"))

	ps.addDecision(foo, v(t, "1.0.0"))                                   // index 0, level 1
	ps.addDerivation(NewTerm(bar, mustRange(t, ">=1.0.0, <3.0.0")), nil) // index 1
	ps.addDecision(bar, v(t, "1.5.0"))                                   // index 2, level 2

	sat, term := ps.satisfier(inc)
	if sat == nil {
		t.Fatal("satisfied incompatibility must have a satisfier")
	}
	// The derivation at index 1 does not yet pin bar below 2.0.0; the
	// decision at index 2 completes the clause.
	if sat.index != 2 {
		t.Fatalf("satisfier index = %d, want 2", sat.index)
	}
	if !term.Package.Equal(bar) {
		t.Fatalf("satisfier term is for %s, want bar", term.Package.Name())
	}
	if got := ps.previousSatisfierLevel(inc, sat); got != 1 {
		t.Fatalf("previous satisfier level = %d, want 1", got)
	}
}

func TestPartialSolutionDecisionCandidates(t *testing.T) {
	t.Parallel()

	ps := newPartialSolution()
	root := MakeRootPackage("root")
	foo := MakePackage("foo")
	bar := MakePackage("bar")

	if _, ok := ps.nextDecisionCandidate(); ok {
		t.Fatal("empty solution has no candidates")
	}

	ps.addDerivation(NewTerm(root, SingletonVersionSet(v(t, "1.0.0"))), nil)
	ps.addDerivation(NewTerm(foo, mustRange(t, ">=1.0.0")), nil)
	// A purely negative constraint does not nominate a package.
	ps.addDerivation(NewNegativeTerm(bar, SingletonVersionSet(v(t, "9.0.0"))), nil)

	pkg, ok := ps.nextDecisionCandidate()
	if !ok || !pkg.Equal(root) {
		t.Fatalf("first candidate = %v, want root", pkg)
	}

	ps.addDecision(root, v(t, "1.0.0"))
	pkg, ok = ps.nextDecisionCandidate()
	if !ok || !pkg.Equal(foo) {
		t.Fatalf("next candidate = %v, want foo", pkg)
	}

	ps.addDecision(foo, v(t, "1.0.0"))
	if _, ok := ps.nextDecisionCandidate(); ok {
		t.Fatal("all positively constrained packages decided; no candidate expected")
	}

	sol := ps.solution()
	if len(sol) != 2 {
		t.Fatalf("solution has %d entries, want 2", len(sol))
	}
	if got, _ := sol.GetVersion(root); got != v(t, "1.0.0") {
		t.Fatalf("root version = %s", got)
	}
}
