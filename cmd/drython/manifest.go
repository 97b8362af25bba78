/*
File    : drython/cmd/drython/manifest.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dryscript/drython/eval"
	"github.com/dryscript/drython/stdlib"
)

// libManifest is the shape of a `--libs <manifest.yaml>` file: a simple
// name -> auto-load mapping over stdlib's bundle names.
//
// Example manifest:
//
//	math: true
//	vector: true
//	collection: false
type libManifest map[string]bool

// loadManifest reads and unmarshals a YAML library manifest from path.
func loadManifest(path string) (libManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read manifest %q: %w", path, err)
	}
	var m libManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not parse manifest %q: %w", path, err)
	}
	return m, nil
}

// registerManifestLibraries auto-registers the stdlib bundles a manifest
// marks true, skipping any bundle name it doesn't recognize. The "auto"
// bundle needs no manifest entry: Runner.RunSetup registers it regardless
// of what a manifest says.
func registerManifestLibraries(runner *eval.Runner, m libManifest) {
	bundles := stdlib.Bundles()
	for name, enabled := range m {
		if !enabled {
			continue
		}
		if lib, ok := bundles[name]; ok {
			runner.RegisterLibrary(lib)
		}
	}
}
