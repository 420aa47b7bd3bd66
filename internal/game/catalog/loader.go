package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Content file names expected under the content directory.
const (
	itemsFile   = "items.yaml"
	enemiesFile = "enemies.yaml"
	recipesFile = "recipes.yaml"
	nodesFile   = "nodes.yaml"
)

type contentFiles struct {
	Items   []Item          `yaml:"items"`
	Enemies []Enemy         `yaml:"enemies"`
	Recipes []Recipe        `yaml:"recipes"`
	Nodes   []GatheringNode `yaml:"nodes"`
}

// LoadDir reads the four catalog content files from dir, validates every
// definition, and builds the Registry.
//
// Precondition: dir must contain items.yaml, enemies.yaml, recipes.yaml, and
// nodes.yaml.
// Postcondition: Returns a Registry with all cross-references resolved, or a
// non-nil error naming the offending file or definition.
func LoadDir(dir string) (*Registry, error) {
	var content contentFiles

	for _, name := range []string{itemsFile, enemiesFile, recipesFile, nodesFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &content); err != nil {
			return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
		}
	}

	reg, err := NewRegistry(content.Items, content.Enemies, content.Recipes, content.Nodes)
	if err != nil {
		return nil, fmt.Errorf("building catalog registry: %w", err)
	}
	return reg, nil
}
