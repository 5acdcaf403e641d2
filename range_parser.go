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

import "strings"

// ParseRange parses a constraint string into a VersionSet.
//
// Supported syntax:
//   - Comparison atoms: >=, >, <=, <, ==, !=, =
//   - Tilde ranges: ~1.2.3 is >=1.2.3, <1.3.0
//   - Caret ranges: ^1.2.3 is >=1.2.3, <2.0.0
//   - A bare version as an exact match
//   - Comma-separated conjunction (AND): ">=1.0.0, <2.0.0"
//   - Double-pipe disjunction (OR): "<1.0.0 || >=2.0.0"
//   - Wildcard "*" (or the empty string) for any version
//
// Whitespace around atoms and between operator and version is ignored.
func ParseRange(s string) (VersionSet, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "*" {
		return FullVersionSet(), nil
	}

	result := EmptyVersionSet()
	for _, orPart := range strings.Split(trimmed, "||") {
		orPart = strings.TrimSpace(orPart)
		if orPart == "" {
			return VersionSet{}, &InvalidConstraintError{Input: s, Reason: "empty disjunction branch"}
		}

		current := FullVersionSet()
		for _, andPart := range strings.Split(orPart, ",") {
			atom := strings.TrimSpace(andPart)
			if atom == "" {
				return VersionSet{}, &InvalidConstraintError{Input: s, Reason: "empty constraint atom"}
			}
			set, err := parseRangeAtom(atom)
			if err != nil {
				return VersionSet{}, err
			}
			current = current.Intersection(set)
			if current.IsEmpty() {
				break
			}
		}
		result = result.Union(current)
	}
	return result, nil
}

// MustParseRange is ParseRange for trusted literals; it panics on error.
func MustParseRange(s string) VersionSet {
	set, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return set
}

var rangeOperators = []struct {
	prefix string
	build  func(Version) VersionSet
}{
	{">=", func(v Version) VersionSet { return VersionSetAbove(v, true) }},
	{">", func(v Version) VersionSet { return VersionSetAbove(v, false) }},
	{"<=", func(v Version) VersionSet { return VersionSetBelow(v, true) }},
	{"<", func(v Version) VersionSet { return VersionSetBelow(v, false) }},
	{"==", SingletonVersionSet},
	{"!=", func(v Version) VersionSet { return SingletonVersionSet(v).Complement() }},
	{"=", SingletonVersionSet},
	{"~", tildeRange},
	{"^", caretRange},
}

func parseRangeAtom(atom string) (VersionSet, error) {
	if atom == "*" {
		return FullVersionSet(), nil
	}

	for _, op := range rangeOperators {
		if strings.HasPrefix(atom, op.prefix) {
			v, err := ParseVersion(strings.TrimSpace(atom[len(op.prefix):]))
			if err != nil {
				return VersionSet{}, err
			}
			return op.build(v), nil
		}
	}

	// No operator: a bare version is an exact match, anything else that
	// starts with punctuation is an operator we do not know.
	if strings.IndexFunc(atom, func(r rune) bool { return r >= '0' && r <= '9' }) != 0 {
		return VersionSet{}, &InvalidConstraintError{Input: atom, Reason: "unrecognized operator"}
	}
	v, err := ParseVersion(atom)
	if err != nil {
		return VersionSet{}, err
	}
	return SingletonVersionSet(v), nil
}

// tildeRange allows patch-level drift: >=v, <v.(minor+1).0.
func tildeRange(v Version) VersionSet {
	return VersionSetBetween(v, Version{Major: v.Major, Minor: v.Minor + 1})
}

// caretRange allows minor-level drift: >=v, <(major+1).0.0.
func caretRange(v Version) VersionSet {
	return VersionSetBetween(v, Version{Major: v.Major + 1})
}
