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

import "slices"

// versionInterval is a contiguous run of versions between a lower and an
// upper bound. Whether each endpoint belongs to the interval depends on the
// bound's inclusivity.
//
// Examples:
//   - [1.0.0, 2.0.0) is >=1.0.0, <2.0.0
//   - (1.0.0, 2.0.0] is >1.0.0, <=2.0.0
//   - [1.0.0, +inf) is >=1.0.0
type versionInterval struct {
	lower versionBound
	upper versionBound
}

// newInterval builds an interval, reporting false when the bounds describe
// an empty run (lower past upper, or equal with an exclusive endpoint).
func newInterval(lower, upper versionBound) (versionInterval, bool) {
	iv := versionInterval{lower: lower, upper: upper}
	if iv.isEmpty() {
		return versionInterval{}, false
	}
	return iv, true
}

func (iv versionInterval) isEmpty() bool {
	if iv.lower.isPosInfinity() || iv.upper.isNegInfinity() {
		return true
	}
	if !iv.lower.isFinite() || !iv.upper.isFinite() {
		return false
	}

	cmp := iv.lower.version.Compare(iv.upper.version)
	switch {
	case cmp < 0:
		return false
	case cmp > 0:
		return true
	default:
		return !iv.lower.inclusive || !iv.upper.inclusive
	}
}

func (iv versionInterval) contains(version Version) bool {
	if iv.lower.isFinite() {
		if cmp := version.Compare(iv.lower.version); cmp < 0 {
			return false
		} else if cmp == 0 && !iv.lower.inclusive {
			return false
		}
	}
	if iv.upper.isFinite() {
		if cmp := version.Compare(iv.upper.version); cmp > 0 {
			return false
		} else if cmp == 0 && !iv.upper.inclusive {
			return false
		}
	}
	return true
}

// upperBeforeLower reports whether an upper bound ends before a lower bound
// begins, so that the two share no version. Flush bounds count: [..,v) next
// to [v,..) has no versions between them and upperBeforeLower is true,
// while [..,v] next to [v,..) shares v and upperBeforeLower is false.
func upperBeforeLower(upper, lower versionBound) bool {
	switch {
	case upper.isNegInfinity():
		return !lower.isNegInfinity()
	case lower.isPosInfinity():
		return !upper.isPosInfinity()
	case upper.isPosInfinity() || lower.isNegInfinity():
		return false
	}

	cmp := upper.version.Compare(lower.version)
	if cmp != 0 {
		return cmp < 0
	}
	return !upper.inclusive || !lower.inclusive
}

func (iv versionInterval) overlaps(other versionInterval) bool {
	return !upperBeforeLower(iv.upper, other.lower) &&
		!upperBeforeLower(other.upper, iv.lower)
}

// touches reports whether two intervals overlap or sit flush against each
// other with no version in between, so their union is a single interval.
func (iv versionInterval) touches(other versionInterval) bool {
	if iv.overlaps(other) {
		return true
	}
	return adjacentBounds(iv.upper, other.lower) || adjacentBounds(other.upper, iv.lower)
}

// adjacentBounds reports whether an upper and a lower endpoint at the same
// version leave no gap: one of them must include the version.
func adjacentBounds(upper, lower versionBound) bool {
	if !upper.isFinite() || !lower.isFinite() {
		return false
	}
	if upper.version.Compare(lower.version) != 0 {
		return false
	}
	return upper.inclusive || lower.inclusive
}

func (iv versionInterval) merge(other versionInterval) versionInterval {
	return versionInterval{
		lower: minLower(iv.lower, other.lower),
		upper: maxUpper(iv.upper, other.upper),
	}
}

func (iv versionInterval) covers(other versionInterval) bool {
	return compareLower(iv.lower, other.lower) <= 0 &&
		compareUpper(iv.upper, other.upper) >= 0
}

func intersectInterval(a, b versionInterval) (versionInterval, bool) {
	return newInterval(maxLower(a.lower, b.lower), minUpper(a.upper, b.upper))
}

// complementLowerBound gives the lower endpoint of the gap that starts where
// this interval ends.
func (iv versionInterval) complementLowerBound() versionBound {
	if !iv.upper.isFinite() {
		return iv.upper
	}
	return versionBound{version: iv.upper.version, inclusive: !iv.upper.inclusive}
}

// complementUpperBound gives the upper endpoint of the gap that ends where
// this interval begins.
func (iv versionInterval) complementUpperBound() versionBound {
	if !iv.lower.isFinite() {
		return iv.lower
	}
	return versionBound{version: iv.lower.version, inclusive: !iv.lower.inclusive}
}

// normalizeIntervals drops empty intervals, sorts by lower bound, and merges
// every overlapping or adjacent pair, yielding the canonical form: strictly
// ascending, disjoint, non-adjacent.
func normalizeIntervals(intervals []versionInterval) []versionInterval {
	filtered := make([]versionInterval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.isEmpty() {
			filtered = append(filtered, iv)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	slices.SortFunc(filtered, func(a, b versionInterval) int {
		return compareLower(a.lower, b.lower)
	})

	merged := filtered[:1]
	for i := 1; i < len(filtered); i++ {
		last := &merged[len(merged)-1]
		current := filtered[i]
		if last.touches(current) {
			*last = last.merge(current)
		} else {
			merged = append(merged, current)
		}
	}

	out := make([]versionInterval, len(merged))
	copy(out, merged)
	return out
}
