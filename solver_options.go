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

// SolverOptions configures a Resolver.
type SolverOptions struct {
	// MaxIterations caps the main loop. Zero (the default) disables the
	// cap; set it when the provider is untrusted.
	MaxIterations int

	// Logger receives debug messages during solving. Nil means silent.
	Logger *slog.Logger

	// Reporter renders derivation trees in NoSolutionError. Nil selects
	// the tree reporter.
	Reporter Reporter
}

// SolverOption is a functional option for configuring a Resolver.
type SolverOption func(*SolverOptions)

func defaultSolverOptions() SolverOptions {
	return SolverOptions{}
}

// WithMaxIterations caps the number of main-loop iterations. Values at or
// below zero disable the cap.
//
// Example:
//
//	resolver := NewResolver(provider, WithMaxIterations(10000))
func WithMaxIterations(n int) SolverOption {
	return func(opts *SolverOptions) {
		if n <= 0 {
			opts.MaxIterations = 0
		} else {
			opts.MaxIterations = n
		}
	}
}

// WithLogger sets a structured logger for solver diagnostics: decision
// making, conflict resolution, backtracking.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	resolver := NewResolver(provider, WithLogger(logger))
func WithLogger(logger *slog.Logger) SolverOption {
	return func(opts *SolverOptions) {
		opts.Logger = logger
	}
}

// WithReporter selects the reporter used to render NoSolutionError.
//
// Example:
//
//	resolver := NewResolver(provider, WithReporter(&CollapsedReporter{}))
func WithReporter(reporter Reporter) SolverOption {
	return func(opts *SolverOptions) {
		opts.Reporter = reporter
	}
}
