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

import "log/slog"

// Resolver drives PubGrub version solving: alternating unit propagation and
// decision making over a pool of incompatibilities, with conflict-driven
// clause learning on the way down and non-chronological backtracking on the
// way back up.
//
// Basic usage:
//
//	provider := NewInMemoryProvider()
//	// ... populate provider ...
//	resolver := NewResolver(provider)
//	solution, err := resolver.Solve(MakeRootPackage("root"), MustParseVersion("1.0.0"))
//
// A Resolver may be reused for sequential solves; concurrent solves need
// one Resolver each.
type Resolver struct {
	provider DependencyProvider
	options  SolverOptions

	stats Stats
}

// Stats counts the work of the most recent solve.
type Stats struct {
	Iterations     int
	Decisions      int
	Derivations    int
	Conflicts      int
	LearnedClauses int
	Pool           int
}

// NewResolver creates a resolver over a provider.
func NewResolver(provider DependencyProvider, opts ...SolverOption) *Resolver {
	options := defaultSolverOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &Resolver{provider: provider, options: options}
}

// Solve is the convenience entry point with default options.
func Solve(provider DependencyProvider, root Package, rootVersion Version) (Solution, error) {
	return NewResolver(provider).Solve(root, rootVersion)
}

// Stats returns the counters of the most recent Solve call.
func (r *Resolver) Stats() Stats {
	return r.stats
}

// Solve selects one version of every package transitively required by the
// root at rootVersion, or explains why none exists.
//
// On success the Solution holds every decided package including the root.
// An unsolvable instance returns *NoSolutionError whose Incompatibility is
// the root of the derivation DAG. Provider failures and the optional
// iteration cap surface as their own error kinds.
func (r *Resolver) Solve(root Package, rootVersion Version) (Solution, error) {
	st := &solveState{
		provider:  r.provider,
		options:   r.options,
		partial:   newPartialSolution(),
		byPackage: make(map[Name][]*Incompatibility),
		depsAdded: make(map[packageVersionKey]bool),
		queued:    make(map[Name]bool),
		logger:    r.options.Logger,
	}

	st.debug("starting solve", "root", root.Name(), "version", rootVersion)
	st.record(NewRootIncompatibility(root, rootVersion))
	st.enqueue(root)

	solution, err := st.run()
	r.stats = st.stats
	r.stats.Pool = len(st.pool)

	if nsErr, ok := err.(*NoSolutionError); ok && r.options.Reporter != nil {
		return nil, nsErr.WithReporter(r.options.Reporter)
	}
	return solution, err
}

// solveState is the per-solve working set: the partial solution, the
// append-only incompatibility pool with its per-package index, and the
// propagation work queue.
type solveState struct {
	provider DependencyProvider
	options  SolverOptions

	partial   *partialSolution
	pool      []*Incompatibility
	byPackage map[Name][]*Incompatibility
	depsAdded map[packageVersionKey]bool

	queue  []Package
	queued map[Name]bool

	stats  Stats
	logger *slog.Logger
}

func (st *solveState) debug(msg string, args ...any) {
	if st.logger != nil {
		st.logger.Debug(msg, args...)
	}
}

func (st *solveState) record(inc *Incompatibility) {
	st.pool = append(st.pool, inc)
	for _, t := range inc.Terms {
		st.byPackage[t.Package.name] = append(st.byPackage[t.Package.name], inc)
	}
}

func (st *solveState) enqueue(pkg Package) {
	if st.queued[pkg.name] {
		return
	}
	st.queue = append(st.queue, pkg)
	st.queued[pkg.name] = true
}

func (st *solveState) dequeue() (Package, bool) {
	if len(st.queue) == 0 {
		return Package{}, false
	}
	pkg := st.queue[0]
	st.queue = st.queue[1:]
	delete(st.queued, pkg.name)
	return pkg, true
}

func (st *solveState) clearQueue() {
	st.queue = st.queue[:0]
	clear(st.queued)
}

// run is the main loop: propagate to fixpoint, then decide, until either
// every constrained package is decided or conflict analysis derives the
// empty clause.
func (st *solveState) run() (Solution, error) {
	for {
		st.stats.Iterations++
		if st.options.MaxIterations > 0 && st.stats.Iterations > st.options.MaxIterations {
			return nil, &IterationLimitError{Iterations: st.options.MaxIterations}
		}

		if err := st.propagate(); err != nil {
			return nil, err
		}

		pkg, ok := st.partial.nextDecisionCandidate()
		if !ok {
			st.debug("solution found",
				"iterations", st.stats.Iterations,
				"decisions", st.stats.Decisions,
			)
			return st.partial.solution(), nil
		}

		if err := st.decide(pkg); err != nil {
			return nil, err
		}
	}
}

// propagate works the queue to fixpoint. Every incompatibility mentioning a
// queued package is re-examined: a fully satisfied one is a conflict and
// goes through resolution; an almost-satisfied one forces the negation of
// its unit term as a new derivation.
func (st *solveState) propagate() error {
	for {
		pkg, ok := st.dequeue()
		if !ok {
			return nil
		}

		// Walk newest-first so learned clauses are seen before the
		// older, weaker ones they supersede.
		incs := st.byPackage[pkg.name]
		for i := len(incs) - 1; i >= 0; i-- {
			inc := incs[i]
			relation, unit := st.partial.relation(inc)

			switch relation {
			case relationSatisfied:
				learned, err := st.resolveConflict(inc)
				if err != nil {
					return err
				}
				// Restart propagation from the learned clause's unit
				// package alone; everything else queued before the
				// backtrack is stale.
				st.clearQueue()
				if rel, learnedUnit := st.partial.relation(learned); rel == relationAlmostSatisfied {
					st.derive(*learnedUnit, learned)
				}

			case relationAlmostSatisfied:
				st.derive(*unit, inc)
			}

			if relation == relationSatisfied {
				break
			}
		}
	}
}

// derive records that unit's negation must hold: the only way to keep cause
// from being violated.
func (st *solveState) derive(unit Term, cause *Incompatibility) {
	negated := unit.Negate()
	st.partial.addDerivation(negated, cause)
	st.stats.Derivations++
	st.debug("derived", "term", negated, "cause", cause)
	st.enqueue(unit.Package)
}

// decide selects a version for pkg. No selectable version records a
// NoVersions incompatibility and leaves the conflict to propagation;
// otherwise the decision is appended and the version's dependencies join
// the pool.
func (st *solveState) decide(pkg Package) error {
	accumulated, _ := st.partial.accumulated(pkg)
	term := NewTerm(pkg, accumulated)

	candidates, err := st.candidates(pkg, term)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		st.debug("no versions", "package", pkg.Name(), "constraint", accumulated)
		st.record(NewNoVersionsIncompatibility(term))
		st.enqueue(pkg)
		return nil
	}

	version, err := st.selectCandidate(pkg, candidates)
	if err != nil {
		return err
	}

	deps, err := st.provider.GetDependencies(pkg, version)
	if err != nil {
		return &DependencyError{Package: pkg, Version: version, Err: err}
	}

	st.partial.addDecision(pkg, version)
	st.stats.Decisions++
	st.debug("decision",
		"package", pkg.Name(),
		"version", version,
		"level", st.partial.decisionLevel(),
	)

	// A re-decision after backtracking would re-register the same
	// dependency clauses; the pool is append-only, so register once.
	key := packageVersionKey{name: pkg.name, version: version}
	if !st.depsAdded[key] {
		st.depsAdded[key] = true
		for _, dep := range deps {
			st.record(NewDependencyIncompatibility(pkg, version, dep.Package, dep.Range))
		}
	}
	st.enqueue(pkg)
	return nil
}

// candidates lists the versions satisfying term in preference order. A
// valid ChooseVersion hint moves to the front; a hint outside the term's
// admitted versions is discarded.
func (st *solveState) candidates(pkg Package, term Term) ([]Version, error) {
	all, err := st.provider.ListVersions(pkg)
	if err != nil {
		return nil, err
	}

	admitted := term.impliedSet()
	candidates := make([]Version, 0, len(all))
	for _, v := range all {
		if admitted.Contains(v) {
			candidates = append(candidates, v)
		}
	}

	if chooser, ok := st.provider.(VersionChooser); ok {
		if hint, ok := chooser.ChooseVersion(pkg, term); ok && admitted.Contains(hint) {
			reordered := make([]Version, 0, len(candidates))
			reordered = append(reordered, hint)
			for _, v := range candidates {
				if v != hint {
					reordered = append(reordered, v)
				}
			}
			candidates = reordered
		}
	}
	return candidates, nil
}

// selectCandidate applies the bounded lookahead: the first candidate that
// does not provoke an immediate conflict wins. If every candidate is
// rejected, the first one compatible with the accumulated term is taken
// anyway and conflict analysis keeps the search complete.
func (st *solveState) selectCandidate(pkg Package, candidates []Version) (Version, error) {
	for _, v := range candidates {
		ok, err := st.lookahead(pkg, v)
		if err != nil {
			return Version{}, err
		}
		if ok {
			return v, nil
		}
		st.debug("lookahead rejected", "package", pkg.Name(), "version", v)
	}
	return candidates[0], nil
}

// lookahead checks one decision step ahead of a candidate: each direct
// dependency range must intersect its package's accumulated set, and for
// each undecided dependency that has versions inside that range, at least
// one of them must have dependencies that fit the current accumulated sets.
// A dependency with no version inside the range does not reject the
// candidate.
func (st *solveState) lookahead(pkg Package, version Version) (bool, error) {
	deps, err := st.provider.GetDependencies(pkg, version)
	if err != nil {
		return false, &DependencyError{Package: pkg, Version: version, Err: err}
	}

	for _, dep := range deps {
		if dep.Package.name == pkg.name {
			if !dep.Range.Contains(version) {
				return false, nil
			}
			continue
		}
		if st.allowedRange(dep).IsEmpty() {
			return false, nil
		}
	}

	for _, dep := range deps {
		if dep.Package.name == pkg.name || st.partial.isDecided(dep.Package) {
			continue
		}
		viable, err := st.anyViableVersion(dep)
		if err != nil {
			return false, err
		}
		if !viable {
			return false, nil
		}
	}
	return true, nil
}

// allowedRange narrows a dependency's range by its package's accumulated
// set.
func (st *solveState) allowedRange(dep Dependency) VersionSet {
	if acc, ok := st.partial.accumulated(dep.Package); ok {
		return dep.Range.Intersection(acc)
	}
	return dep.Range
}

// anyViableVersion reports whether some selectable version of the
// dependency has all of its own dependency ranges compatible with the
// current accumulated sets. This is the one-step transitive part of the
// lookahead; deeper conflicts are left to conflict analysis.
func (st *solveState) anyViableVersion(dep Dependency) (bool, error) {
	allowed := st.allowedRange(dep)
	versions, err := st.provider.ListVersions(dep.Package)
	if err != nil {
		return false, err
	}

	checked := false
	for _, v := range versions {
		if !allowed.Contains(v) {
			continue
		}
		checked = true
		transitive, err := st.provider.GetDependencies(dep.Package, v)
		if err != nil {
			return false, &DependencyError{Package: dep.Package, Version: v, Err: err}
		}
		fits := true
		for _, td := range transitive {
			if st.allowedRange(td).IsEmpty() {
				fits = false
				break
			}
		}
		if fits {
			return true, nil
		}
	}

	// No version inside the range at all: the direct check is the
	// authority on that case, not the transitive one.
	return !checked, nil
}
