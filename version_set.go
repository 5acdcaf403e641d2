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

// VersionSet is a subset of the version domain held in canonical form: an
// ordered sequence of disjoint, non-adjacent intervals. The zero value is
// the empty set. VersionSets are immutable values; every operation returns
// a new set and never aliases the receiver's intervals into a mutable
// result.
type VersionSet struct {
	intervals []versionInterval
}

func newVersionSet(intervals []versionInterval) VersionSet {
	return VersionSet{intervals: normalizeIntervals(intervals)}
}

// EmptyVersionSet returns the set containing no versions.
func EmptyVersionSet() VersionSet {
	return VersionSet{}
}

// FullVersionSet returns the set containing every version.
func FullVersionSet() VersionSet {
	return VersionSet{intervals: []versionInterval{{
		lower: negativeInfinityBound(),
		upper: positiveInfinityBound(),
	}}}
}

// SingletonVersionSet returns the set containing exactly one version.
func SingletonVersionSet(version Version) VersionSet {
	iv, _ := newInterval(newLowerBound(version, true), newUpperBound(version, true))
	return VersionSet{intervals: []versionInterval{iv}}
}

// VersionSetAbove returns the set of versions above v: >=v when inclusive,
// >v otherwise.
func VersionSetAbove(v Version, inclusive bool) VersionSet {
	return versionSetFromBounds(newLowerBound(v, inclusive), positiveInfinityBound())
}

// VersionSetBelow returns the set of versions below v: <=v when inclusive,
// <v otherwise.
func VersionSetBelow(v Version, inclusive bool) VersionSet {
	return versionSetFromBounds(negativeInfinityBound(), newUpperBound(v, inclusive))
}

// VersionSetBetween returns the half-open interval [lower, upper).
func VersionSetBetween(lower, upper Version) VersionSet {
	return versionSetFromBounds(newLowerBound(lower, true), newUpperBound(upper, false))
}

func versionSetFromBounds(lower, upper versionBound) VersionSet {
	if iv, ok := newInterval(lower, upper); ok {
		return VersionSet{intervals: []versionInterval{iv}}
	}
	return VersionSet{}
}

// Union returns the set of versions in either s or other.
func (s VersionSet) Union(other VersionSet) VersionSet {
	combined := make([]versionInterval, 0, len(s.intervals)+len(other.intervals))
	combined = append(combined, s.intervals...)
	combined = append(combined, other.intervals...)
	return newVersionSet(combined)
}

// Intersection returns the set of versions in both s and other.
func (s VersionSet) Intersection(other VersionSet) VersionSet {
	if len(s.intervals) == 0 || len(other.intervals) == 0 {
		return VersionSet{}
	}

	result := make([]versionInterval, 0, len(s.intervals))
	i, j := 0, 0
	for i < len(s.intervals) && j < len(other.intervals) {
		if iv, ok := intersectInterval(s.intervals[i], other.intervals[j]); ok {
			result = append(result, iv)
		}
		if compareUpper(s.intervals[i].upper, other.intervals[j].upper) < 0 {
			i++
		} else {
			j++
		}
	}
	return newVersionSet(result)
}

// Complement returns the set of versions not in s. Each finite endpoint
// flips inclusivity on the way across.
func (s VersionSet) Complement() VersionSet {
	if len(s.intervals) == 0 {
		return FullVersionSet()
	}

	gaps := make([]versionInterval, 0, len(s.intervals)+1)
	currentLower := negativeInfinityBound()
	for _, iv := range s.intervals {
		if gap, ok := newInterval(currentLower, iv.complementUpperBound()); ok {
			gaps = append(gaps, gap)
		}
		currentLower = iv.complementLowerBound()
	}
	if tail, ok := newInterval(currentLower, positiveInfinityBound()); ok {
		gaps = append(gaps, tail)
	}
	return newVersionSet(gaps)
}

// Contains reports whether version is a member of the set.
func (s VersionSet) Contains(version Version) bool {
	for _, iv := range s.intervals {
		if iv.contains(version) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the set contains no versions.
func (s VersionSet) IsEmpty() bool {
	return len(s.intervals) == 0
}

// IsFull reports whether the set contains every version.
func (s VersionSet) IsFull() bool {
	return len(s.intervals) == 1 &&
		s.intervals[0].lower.isNegInfinity() &&
		s.intervals[0].upper.isPosInfinity()
}

// IsSubset reports whether every version in s is also in other.
func (s VersionSet) IsSubset(other VersionSet) bool {
	if len(s.intervals) == 0 {
		return true
	}
	if len(other.intervals) == 0 {
		return false
	}

	i, j := 0, 0
	for i < len(s.intervals) {
		if j >= len(other.intervals) {
			return false
		}
		if other.intervals[j].covers(s.intervals[i]) {
			i++
			continue
		}
		if upperBeforeLower(other.intervals[j].upper, s.intervals[i].lower) {
			j++
			continue
		}
		return false
	}
	return true
}

// IsDisjoint reports whether s and other share no version.
func (s VersionSet) IsDisjoint(other VersionSet) bool {
	i, j := 0, 0
	for i < len(s.intervals) && j < len(other.intervals) {
		if s.intervals[i].overlaps(other.intervals[j]) {
			return false
		}
		if compareUpper(s.intervals[i].upper, other.intervals[j].upper) < 0 {
			i++
		} else {
			j++
		}
	}
	return true
}

// Equal reports whether the two sets contain exactly the same versions.
// Canonical form makes this a structural comparison.
func (s VersionSet) Equal(other VersionSet) bool {
	if len(s.intervals) != len(other.intervals) {
		return false
	}
	for i := range s.intervals {
		if compareLower(s.intervals[i].lower, other.intervals[i].lower) != 0 {
			return false
		}
		if compareUpper(s.intervals[i].upper, other.intervals[i].upper) != 0 {
			return false
		}
	}
	return true
}

// singletonVersion reports the single version the set contains, if the set
// is exactly a singleton.
func (s VersionSet) singletonVersion() (Version, bool) {
	if len(s.intervals) != 1 {
		return Version{}, false
	}
	iv := s.intervals[0]
	if !iv.lower.isFinite() || !iv.upper.isFinite() {
		return Version{}, false
	}
	if iv.lower.version.Compare(iv.upper.version) != 0 {
		return Version{}, false
	}
	if !iv.lower.inclusive || !iv.upper.inclusive {
		return Version{}, false
	}
	return iv.lower.version, true
}

// String renders the set in constraint syntax: "==1.0.0",
// ">=1.0.0, <2.0.0", disjoint runs joined by " || ", the empty set as the
// empty-set sign, and the full set as "*".
func (s VersionSet) String() string {
	if len(s.intervals) == 0 {
		return "∅"
	}
	if len(s.intervals) == 1 {
		return intervalString(s.intervals[0])
	}

	parts := make([]string, len(s.intervals))
	for i, iv := range s.intervals {
		parts[i] = intervalString(iv)
	}
	return strings.Join(parts, " || ")
}

func intervalString(iv versionInterval) string {
	if iv.lower.isNegInfinity() && iv.upper.isPosInfinity() {
		return "*"
	}

	if iv.lower.isFinite() && iv.upper.isFinite() &&
		iv.lower.version.Compare(iv.upper.version) == 0 &&
		iv.lower.inclusive && iv.upper.inclusive {
		return fmt.Sprintf("==%s", iv.lower.version)
	}

	var parts []string
	if iv.lower.isFinite() {
		if iv.lower.inclusive {
			parts = append(parts, fmt.Sprintf(">=%s", iv.lower.version))
		} else {
			parts = append(parts, fmt.Sprintf(">%s", iv.lower.version))
		}
	}
	if iv.upper.isFinite() {
		if iv.upper.inclusive {
			parts = append(parts, fmt.Sprintf("<=%s", iv.upper.version))
		} else {
			parts = append(parts, fmt.Sprintf("<%s", iv.upper.version))
		}
	}
	return strings.Join(parts, ", ")
}
