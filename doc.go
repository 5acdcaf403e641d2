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

// Package pubgrub implements the PubGrub version solving algorithm: a
// conflict-driven constraint solver that selects, for a root package at a
// pinned version, one compatible version of every transitive dependency —
// or proves that no such assignment exists and explains why.
//
// The solver alternates unit propagation over a pool of incompatibility
// clauses with decision making over provider-supplied version lists. When a
// clause is violated it learns a new clause by Boolean resolution and
// backtracks non-chronologically; deriving the empty clause proves the
// instance unsolvable, and the clause's cause DAG renders into a
// human-readable derivation (see Reporter).
//
// Package metadata enters through the DependencyProvider interface; the
// solve itself performs no I/O, keeps no state between runs, and is
// deterministic given a deterministic provider. Independent solves may run
// concurrently on separate Resolver instances.
package pubgrub
