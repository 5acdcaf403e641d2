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

// Reporter renders the derivation DAG of an unsolvable incompatibility into
// a human-readable explanation. The DAG's leaves are Root, Dependency, and
// NoVersions facts; every derived node is the resolution of its two
// parents.
type Reporter interface {
	Report(inc *Incompatibility) string
}

// TreeReporter renders the derivation as an indented tree, one cause per
// line, derived nodes introducing their parents.
type TreeReporter struct{}

// Report implements Reporter.
func (r *TreeReporter) Report(inc *Incompatibility) string {
	if inc == nil {
		return "no solution found"
	}
	var lines []string
	r.write(inc, &lines, 0, make(map[*Incompatibility]bool))
	return strings.Join(lines, "\n")
}

func (r *TreeReporter) write(inc *Incompatibility, lines *[]string, depth int, visited map[*Incompatibility]bool) {
	if visited[inc] {
		return
	}
	visited[inc] = true
	indent := strings.Repeat("  ", depth)

	switch inc.Kind {
	case KindRoot:
		*lines = append(*lines, indent+leafText(inc))

	case KindDependency:
		*lines = append(*lines, indent+"Because "+leafText(inc))

	case KindNoVersions:
		*lines = append(*lines, indent+leafText(inc))

	case KindDerived:
		if inc.Cause1 != nil && inc.Cause2 != nil {
			*lines = append(*lines, indent+"Because:")
			r.write(inc.Cause1, lines, depth+1, visited)
			*lines = append(*lines, indent+"and:")
			r.write(inc.Cause2, lines, depth+1, visited)
		}
		*lines = append(*lines, indent+conclusionText(inc))

	default:
		*lines = append(*lines, indent+inc.String())
	}
}

// CollapsedReporter renders the derivation as a single flat chain of
// causes, joined with "And because".
type CollapsedReporter struct{}

// Report implements Reporter.
func (r *CollapsedReporter) Report(inc *Incompatibility) string {
	if inc == nil {
		return "no solution found"
	}

	var lines []string
	r.collect(inc, &lines, make(map[*Incompatibility]bool))
	if len(lines) == 0 {
		return "version solving failed"
	}

	result := lines[0]
	for _, line := range lines[1:] {
		result += "\nAnd because " + line
	}
	return result
}

func (r *CollapsedReporter) collect(inc *Incompatibility, lines *[]string, visited map[*Incompatibility]bool) {
	if visited[inc] {
		return
	}
	visited[inc] = true

	switch inc.Kind {
	case KindRoot, KindDependency, KindNoVersions:
		*lines = append(*lines, leafText(inc))

	case KindDerived:
		if inc.Cause1 != nil && inc.Cause2 != nil {
			r.collect(inc.Cause1, lines, visited)
			r.collect(inc.Cause2, lines, visited)
		}
		*lines = append(*lines, conclusionText(inc))

	default:
		*lines = append(*lines, inc.String())
	}
}

// leafText states a leaf fact of the derivation: the root requirement, a
// dependency declaration, or the absence of versions.
func leafText(inc *Incompatibility) string {
	switch inc.Kind {
	case KindRoot:
		if len(inc.Terms) == 1 {
			if v, ok := inc.Terms[0].Set.singletonVersion(); ok {
				return fmt.Sprintf("the root requirement pins %s to %s", inc.Terms[0].Package.Name(), v)
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
	return inc.String()
}

// conclusionText states what a derived node establishes.
func conclusionText(inc *Incompatibility) string {
	switch len(inc.Terms) {
	case 0:
		return "version solving has failed."
	case 1:
		return fmt.Sprintf("%s is forbidden.", inc.Terms[0])
	default:
		parts := make([]string, len(inc.Terms))
		for i, t := range inc.Terms {
			parts[i] = t.String()
		}
		return fmt.Sprintf("these constraints conflict: %s", strings.Join(parts, " and "))
	}
}

var (
	_ Reporter = (*TreeReporter)(nil)
	_ Reporter = (*CollapsedReporter)(nil)
)
