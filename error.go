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

// InvalidVersionError reports a version string that could not be parsed.
type InvalidVersionError struct {
	Input string
	Err   error
}

func (e *InvalidVersionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid version %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid version %q", e.Input)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.Err
}

// InvalidConstraintError reports a constraint string that could not be
// parsed.
type InvalidConstraintError struct {
	Input  string
	Reason string
}

func (e *InvalidConstraintError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid constraint %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid constraint %q", e.Input)
}

// UnknownPackageError reports that the provider knows no package by this
// identity.
type UnknownPackageError struct {
	Package Package
}

func (e *UnknownPackageError) Error() string {
	return fmt.Sprintf("unknown package %s", e.Package.Name())
}

// VersionNotFoundError reports that a package exists but the requested
// version of it does not.
type VersionNotFoundError struct {
	Package Package
	Version Version
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("package %s has no version %s", e.Package.Name(), e.Version)
}

// DependencyError wraps a provider failure while fetching the dependencies
// of a package version, whether a decided one or one examined by the
// decision lookahead.
type DependencyError struct {
	Package Package
	Version Version
	Err     error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("failed to get dependencies of %s %s: %v", e.Package.Name(), e.Version, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NoSolutionError is the normal terminal outcome of an unsolvable solve:
// the solver derived the empty incompatibility. Incompatibility is the root
// of the derivation DAG; rendering it walks the cause graph down to its
// Root, Dependency, and NoVersions leaves.
type NoSolutionError struct {
	Incompatibility *Incompatibility
	Reporter        Reporter
}

// NewNoSolutionError wraps a derivation root with the default reporter.
func NewNoSolutionError(inc *Incompatibility) *NoSolutionError {
	return &NoSolutionError{Incompatibility: inc, Reporter: &TreeReporter{}}
}

func (e *NoSolutionError) Error() string {
	if e.Incompatibility == nil {
		return "no solution found"
	}
	reporter := e.Reporter
	if reporter == nil {
		reporter = &TreeReporter{}
	}
	return reporter.Report(e.Incompatibility)
}

// WithReporter returns a copy of the error rendering through a different
// reporter.
func (e *NoSolutionError) WithReporter(reporter Reporter) *NoSolutionError {
	return &NoSolutionError{Incompatibility: e.Incompatibility, Reporter: reporter}
}

// IterationLimitError reports that the main loop hit its configured cap,
// guarding against provider-induced pathologies.
type IterationLimitError struct {
	Iterations int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("solver exceeded iteration limit after %d iterations", e.Iterations)
}

var (
	_ error = (*InvalidVersionError)(nil)
	_ error = (*InvalidConstraintError)(nil)
	_ error = (*UnknownPackageError)(nil)
	_ error = (*VersionNotFoundError)(nil)
	_ error = (*DependencyError)(nil)
	_ error = (*NoSolutionError)(nil)
	_ error = (*IterationLimitError)(nil)
)
