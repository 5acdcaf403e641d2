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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RootPackageName is the package name a scenario's root is registered
// under.
const RootPackageName = "root"

// Scenario is a declarative dependency universe, the document format
// consumed by the command-line shell and the scenario tests. Files are JSON
// by default; a .yaml or .yml extension selects YAML.
type Scenario struct {
	Name         string               `json:"name" yaml:"name"`
	Description  string               `json:"description,omitempty" yaml:"description,omitempty"`
	Packages     []ScenarioPackage    `json:"packages" yaml:"packages"`
	Dependencies []ScenarioDependency `json:"dependencies" yaml:"dependencies"`
}

// ScenarioPackage declares a package and its available versions.
type ScenarioPackage struct {
	Name     string   `json:"name" yaml:"name"`
	Versions []string `json:"versions" yaml:"versions"`
}

// ScenarioDependency declares that one package version depends on another
// package within a constraint.
type ScenarioDependency struct {
	Package    string `json:"package" yaml:"package"`
	Version    string `json:"version" yaml:"version"`
	Dependency string `json:"dependency" yaml:"dependency"`
	Constraint string `json:"constraint" yaml:"constraint"`
}

// LoadScenario reads a scenario file, choosing the codec by extension.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}

	var sc Scenario
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, errors.Wrapf(err, "parsing scenario %s", path)
		}
	} else {
		if err := json.Unmarshal(data, &sc); err != nil {
			return nil, errors.Wrapf(err, "parsing scenario %s", path)
		}
	}
	return &sc, nil
}

// Save writes the scenario back out, choosing the codec by extension.
func (sc *Scenario) Save(path string) error {
	var data []byte
	var err error
	if isYAMLPath(path) {
		data, err = yaml.Marshal(sc)
	} else {
		data, err = json.MarshalIndent(sc, "", "  ")
	}
	if err != nil {
		return errors.Wrapf(err, "encoding scenario %s", path)
	}
	if !isYAMLPath(path) {
		data = append(data, '\n')
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing scenario %s", path)
	}
	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Provider materializes the scenario into an InMemoryProvider. The package
// named "root" becomes the root package; every version and constraint
// string is parsed, surfacing InvalidVersionError and
// InvalidConstraintError with the declaration they came from.
func (sc *Scenario) Provider() (*InMemoryProvider, error) {
	provider := NewInMemoryProvider()

	for _, sp := range sc.Packages {
		pkg := MakePackage(sp.Name)
		if sp.Name == RootPackageName {
			pkg = MakeRootPackage(sp.Name)
		}
		provider.AddPackage(pkg)
		for _, vs := range sp.Versions {
			v, err := ParseVersion(vs)
			if err != nil {
				return nil, errors.Wrapf(err, "package %s", sp.Name)
			}
			provider.AddVersion(pkg, v)
		}
	}

	for _, sd := range sc.Dependencies {
		pkg, ok := provider.Package(sd.Package)
		if !ok {
			return nil, errors.Errorf("dependency declared for undefined package %s", sd.Package)
		}
		dep, ok := provider.Package(sd.Dependency)
		if !ok {
			return nil, errors.Errorf("dependency on undefined package %s", sd.Dependency)
		}
		v, err := ParseVersion(sd.Version)
		if err != nil {
			return nil, errors.Wrapf(err, "dependency of %s", sd.Package)
		}
		set, err := ParseRange(sd.Constraint)
		if err != nil {
			return nil, errors.Wrapf(err, "dependency %s -> %s", sd.Package, sd.Dependency)
		}
		provider.AddDependency(pkg, v, Dependency{Package: dep, Range: set})
	}

	return provider, nil
}
