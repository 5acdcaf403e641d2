package pubgrub

import "testing"

func TestTermNegateInvolution(t *testing.T) {
	t.Parallel()

	pkg := MakePackage("foo")
	terms := []Term{
		NewTerm(pkg, mustRange(t, ">=1.0.0, <2.0.0")),
		NewNegativeTerm(pkg, SingletonVersionSet(v(t, "1.5.0"))),
		NewTerm(pkg, FullVersionSet()),
		NewNegativeTerm(pkg, EmptyVersionSet()),
	}

	for _, term := range terms {
		back := term.Negate().Negate()
		if back.Positive != term.Positive || !back.Set.Equal(term.Set) {
			t.Fatalf("double negation of %s gave %s", term, back)
		}
		if term.Relation(term) != RelationSatisfies {
			t.Fatalf("%s must satisfy itself", term)
		}
	}
}

func TestTermRelation(t *testing.T) {
	t.Parallel()

	pkg := MakePackage("foo")
	tests := []struct {
		name    string
		subject Term
		object  Term
		want    TermRelation
	}{
		{
			"narrow satisfies wide",
			NewTerm(pkg, mustRange(t, ">=1.2.0, <1.8.0")),
			NewTerm(pkg, mustRange(t, ">=1.0.0, <2.0.0")),
			RelationSatisfies,
		},
		{
			"disjoint ranges contradict",
			NewTerm(pkg, mustRange(t, ">=1.0.0, <2.0.0")),
			NewTerm(pkg, mustRange(t, ">=2.0.0")),
			RelationContradicts,
		},
		{
			"overlap is inconclusive",
			NewTerm(pkg, mustRange(t, ">=1.0.0, <2.0.0")),
			NewTerm(pkg, mustRange(t, ">=1.5.0")),
			RelationInconclusive,
		},
		{
			"positive satisfies complement-shaped negative",
			NewTerm(pkg, mustRange(t, ">=2.0.0")),
			NewNegativeTerm(pkg, mustRange(t, "<2.0.0")),
			RelationSatisfies,
		},
		{
			"positive inside negative's excluded set contradicts",
			NewTerm(pkg, mustRange(t, ">=1.0.0, <1.5.0")),
			NewNegativeTerm(pkg, mustRange(t, ">=1.0.0, <2.0.0")),
			RelationContradicts,
		},
		{
			"anything satisfies the always-true term",
			NewTerm(pkg, SingletonVersionSet(v(t, "1.0.0"))),
			NewNegativeTerm(pkg, EmptyVersionSet()),
			RelationSatisfies,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.subject.Relation(tt.object); got != tt.want {
				t.Fatalf("relation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTermIntersect(t *testing.T) {
	t.Parallel()

	pkg := MakePackage("foo")

	a := NewTerm(pkg, mustRange(t, ">=1.0.0, <2.0.0"))
	b := NewTerm(pkg, mustRange(t, ">=1.5.0"))
	got := a.Intersect(b)
	if !got.Positive || !got.Set.Equal(mustRange(t, ">=1.5.0, <2.0.0")) {
		t.Fatalf("positive ∩ positive = %s", got)
	}

	// Two negatives stay negative: the excluded sets union.
	na := NewNegativeTerm(pkg, SingletonVersionSet(v(t, "1.0.0")))
	nb := NewNegativeTerm(pkg, SingletonVersionSet(v(t, "2.0.0")))
	got = na.Intersect(nb)
	if got.Positive {
		t.Fatalf("negative ∩ negative should stay negative, got %s", got)
	}
	if got.Set.Contains(v(t, "1.5.0")) || !got.Set.Contains(v(t, "1.0.0")) {
		t.Fatalf("unexpected excluded set %s", got.Set)
	}

	// Mixing signs resolves through implied sets.
	mixed := a.Intersect(NewNegativeTerm(pkg, mustRange(t, ">=1.5.0")))
	if !mixed.Positive || !mixed.Set.Equal(mustRange(t, ">=1.0.0, <1.5.0")) {
		t.Fatalf("positive ∩ negative = %s", mixed)
	}

	// Contradicting terms intersect to the canonical empty positive term.
	empty := a.Intersect(NewTerm(pkg, mustRange(t, ">=3.0.0")))
	if !empty.Positive || !empty.Set.IsEmpty() {
		t.Fatalf("contradiction = %s", empty)
	}

	// Intersecting with the always-true term is the identity on meaning.
	identity := a.Intersect(NewNegativeTerm(pkg, EmptyVersionSet()))
	if !identity.impliedSet().Equal(a.impliedSet()) {
		t.Fatalf("identity intersection changed the term: %s", identity)
	}
}

func TestTermSatisfiedBy(t *testing.T) {
	t.Parallel()

	pkg := MakePackage("foo")
	assignment := NewTerm(pkg, SingletonVersionSet(v(t, "1.5.0")))

	inside := NewTerm(pkg, mustRange(t, ">=1.0.0, <2.0.0"))
	if !inside.SatisfiedBy(assignment) {
		t.Fatal("1.5.0 satisfies >=1.0.0, <2.0.0")
	}

	outside := NewTerm(pkg, mustRange(t, ">=2.0.0"))
	if outside.SatisfiedBy(assignment) {
		t.Fatal("1.5.0 does not satisfy >=2.0.0")
	}

	negative := NewNegativeTerm(pkg, mustRange(t, ">=2.0.0"))
	if !negative.SatisfiedBy(assignment) {
		t.Fatal("1.5.0 satisfies not >=2.0.0")
	}
}

func TestTermString(t *testing.T) {
	t.Parallel()

	pkg := MakePackage("foo")
	tests := []struct {
		term Term
		want string
	}{
		{NewTerm(pkg, FullVersionSet()), "foo"},
		{NewNegativeTerm(pkg, FullVersionSet()), "not foo"},
		{NewTerm(pkg, SingletonVersionSet(v(t, "1.0.0"))), "foo ==1.0.0"},
		{NewTerm(pkg, mustRange(t, ">=1.0.0, <2.0.0")), "foo >=1.0.0, <2.0.0"},
		{NewNegativeTerm(pkg, SingletonVersionSet(v(t, "1.0.0"))), "not foo ==1.0.0"},
	}

	for _, tt := range tests {
		if got := tt.term.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

// Display normalization must never change meaning: a positive term and the
// negative term over the complementary set admit the same versions and
// relate identically to everything.
func TestTermNormalizationEquivalence(t *testing.T) {
	t.Parallel()

	pkg := MakePackage("foo")
	set := mustRange(t, ">=1.0.0, <2.0.0")
	positive := NewTerm(pkg, set)
	negative := NewNegativeTerm(pkg, set.Complement())

	others := []Term{
		NewTerm(pkg, mustRange(t, ">=1.5.0")),
		NewTerm(pkg, mustRange(t, ">=2.0.0")),
		NewTerm(pkg, mustRange(t, ">=1.2.0, <1.4.0")),
		NewNegativeTerm(pkg, SingletonVersionSet(v(t, "1.5.0"))),
	}

	for _, other := range others {
		if positive.Relation(other) != negative.Relation(other) {
			t.Fatalf("relation to %s differs between forms", other)
		}
		if other.Relation(positive) != other.Relation(negative) {
			t.Fatalf("relation from %s differs between forms", other)
		}
	}
}
