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

// Command pubgrub resolves dependency scenarios with the PubGrub solver.
//
// Usage:
//
//	pubgrub --scenario deps.json --resolve root@1.0.0
//	pubgrub --example --verbose
//
// A scenario file declares packages, versions, and dependency constraints;
// see the Scenario type. On success the selected versions are printed, one
// per line; on an unsolvable scenario the derivation of the conflict is
// printed instead.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	pubgrub "github.com/grantmwilliams/pubgrub"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		scenarioPath string
		resolveSpec  string
		example      bool
		collapsed    bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:           "pubgrub",
		Short:         "PubGrub dependency resolution tool",
		Long:          "Resolve package dependency scenarios with the PubGrub version solving algorithm.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var scenario *pubgrub.Scenario
			switch {
			case scenarioPath != "":
				sc, err := pubgrub.LoadScenario(scenarioPath)
				if err != nil {
					return err
				}
				scenario = sc
			case example:
				scenario = exampleScenario()
			default:
				return errors.New("nothing to do: pass --scenario or --example")
			}

			if resolveSpec == "" {
				resolveSpec = pubgrub.RootPackageName + "@1.0.0"
			}
			return runResolve(cmd, scenario, resolveSpec, collapsed, verbose)
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "load a scenario from a JSON or YAML file")
	cmd.Flags().StringVar(&resolveSpec, "resolve", "", "resolve PKG@VERSION (default root@1.0.0)")
	cmd.Flags().BoolVar(&example, "example", false, "run the built-in example scenario")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "render failures in the collapsed format")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print solver statistics and debug logs")
	return cmd
}

func runResolve(cmd *cobra.Command, scenario *pubgrub.Scenario, spec string, collapsed, verbose bool) error {
	name, versionStr, ok := strings.Cut(spec, "@")
	if !ok {
		return errors.Errorf("invalid --resolve %q: expected PKG@VERSION", spec)
	}
	version, err := pubgrub.ParseVersion(versionStr)
	if err != nil {
		return err
	}

	provider, err := scenario.Provider()
	if err != nil {
		return err
	}
	root, ok := provider.Package(name)
	if !ok {
		return errors.Errorf("package %q is not declared in the scenario", name)
	}

	opts := []pubgrub.SolverOption{}
	if collapsed {
		opts = append(opts, pubgrub.WithReporter(&pubgrub.CollapsedReporter{}))
	}
	if verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, pubgrub.WithLogger(logger))
	}

	resolver := pubgrub.NewResolver(pubgrub.NewCachedProvider(provider), opts...)

	start := time.Now()
	solution, err := resolver.Solve(root, version)
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Resolving %s@%s (%s)\n", name, version, scenario.Name)

	if err != nil {
		var noSolution *pubgrub.NoSolutionError
		if errors.As(err, &noSolution) {
			fmt.Fprintln(out, "Resolution failed:")
			fmt.Fprintln(out, noSolution.Error())
			return nil
		}
		return err
	}

	fmt.Fprintln(out, "Solution:")
	for pv := range solution.All() {
		fmt.Fprintf(out, "  %s = %s\n", pv.Package.Name(), pv.Version)
	}

	if verbose {
		stats := resolver.Stats()
		fmt.Fprintln(out, "Statistics:")
		fmt.Fprintf(out, "  iterations:      %d\n", stats.Iterations)
		fmt.Fprintf(out, "  decisions:       %d\n", stats.Decisions)
		fmt.Fprintf(out, "  derivations:     %d\n", stats.Derivations)
		fmt.Fprintf(out, "  conflicts:       %d\n", stats.Conflicts)
		fmt.Fprintf(out, "  learned clauses: %d\n", stats.LearnedClauses)
		fmt.Fprintf(out, "  duration:        %s\n", elapsed.Round(time.Microsecond))
	}
	return nil
}

// exampleScenario mirrors the demo universe of the interactive tool: a
// small web stack in which web-framework and database share a crypto
// dependency. Its newest versions resolve together without a conflict.
func exampleScenario() *pubgrub.Scenario {
	return &pubgrub.Scenario{
		Name:        "example",
		Description: "built-in demonstration scenario",
		Packages: []pubgrub.ScenarioPackage{
			{Name: "root", Versions: []string{"1.0.0"}},
			{Name: "web-framework", Versions: []string{"1.0.0", "1.1.0", "2.0.0"}},
			{Name: "database", Versions: []string{"1.0.0", "1.5.0", "2.0.0"}},
			{Name: "logging", Versions: []string{"1.0.0", "1.2.0"}},
			{Name: "crypto", Versions: []string{"1.0.0", "2.0.0"}},
		},
		Dependencies: []pubgrub.ScenarioDependency{
			{Package: "root", Version: "1.0.0", Dependency: "web-framework", Constraint: ">=1.0.0"},
			{Package: "root", Version: "1.0.0", Dependency: "database", Constraint: ">=1.0.0"},
			{Package: "web-framework", Version: "1.1.0", Dependency: "logging", Constraint: ">=1.0.0"},
			{Package: "web-framework", Version: "2.0.0", Dependency: "crypto", Constraint: ">=2.0.0"},
			{Package: "database", Version: "2.0.0", Dependency: "crypto", Constraint: ">=1.0.0"},
		},
	}
}
