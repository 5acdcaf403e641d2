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
	"iter"
)

// PackageVersion is one selected package in a solution.
type PackageVersion struct {
	Package Package
	Version Version
}

func (pv PackageVersion) String() string {
	return fmt.Sprintf("%s %s", pv.Package.Name(), pv.Version)
}

// Solution is a complete assignment: every decided package with its
// selected version, in decision order. The root package is included.
type Solution []PackageVersion

// GetVersion looks up the selected version of a package by name.
func (s Solution) GetVersion(pkg Package) (Version, bool) {
	for _, pv := range s {
		if pv.Package.Equal(pkg) {
			return pv.Version, true
		}
	}
	return Version{}, false
}

// All returns an iterator over the selected package versions:
//
//	for pv := range solution.All() {
//	    fmt.Printf("%s: %s\n", pv.Package.Name(), pv.Version)
//	}
func (s Solution) All() iter.Seq[PackageVersion] {
	return func(yield func(PackageVersion) bool) {
		for _, pv := range s {
			if !yield(pv) {
				return
			}
		}
	}
}
