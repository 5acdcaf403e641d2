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

	"github.com/Masterminds/semver/v3"
)

// Version is a totally ordered package version of the dotted numeric form
// MAJOR.MINOR.PATCH. Ordering is lexicographic on the triple, equality is by
// value, and the zero value is 0.0.0. Versions are immutable and comparable,
// so they can be used directly as map keys.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// ParseVersion parses a MAJOR.MINOR.PATCH string. Each component must be a
// non-negative integer; prerelease and build suffixes are rejected.
func ParseVersion(s string) (Version, error) {
	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, &InvalidVersionError{Input: s, Err: err}
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return Version{}, &InvalidVersionError{Input: s, Err: fmt.Errorf("prerelease and build suffixes are not supported")}
	}
	return Version{Major: sv.Major(), Minor: sv.Minor(), Patch: sv.Patch()}, nil
}

// MustParseVersion is ParseVersion for trusted literals; it panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns a negative number if v < other, zero if equal, and a
// positive number if v > other.
func (v Version) Compare(other Version) int {
	if c := compareUint64(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareUint64(v.Minor, other.Minor); c != 0 {
		return c
	}
	return compareUint64(v.Patch, other.Patch)
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String returns the dotted form of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
