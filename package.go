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

import "unique"

// Name is an interned package name. Equal strings intern to the same
// handle, so Name comparison is a pointer comparison and Names are cheap
// map keys even when the same package appears in thousands of terms.
type Name = unique.Handle[string]

// MakeName interns a string as a Name.
func MakeName(s string) Name {
	return unique.Make(s)
}

// Package identifies a package by interned name, with a flag marking the
// distinguished root of a solve. Packages are immutable and comparable;
// equality is by name (the root carries a distinct name by construction).
type Package struct {
	name Name
	root bool
}

// MakePackage creates a non-root package identity.
func MakePackage(name string) Package {
	return Package{name: MakeName(name)}
}

// MakeRootPackage creates the root package identity for a solve.
func MakeRootPackage(name string) Package {
	return Package{name: MakeName(name), root: true}
}

// Name returns the package name.
func (p Package) Name() string {
	return p.name.Value()
}

// IsRoot reports whether this is the distinguished root package.
func (p Package) IsRoot() bool {
	return p.root
}

// Equal reports whether two packages share a name, ignoring the root flag.
func (p Package) Equal(other Package) bool {
	return p.name == other.name
}

func (p Package) String() string {
	return p.name.Value()
}
