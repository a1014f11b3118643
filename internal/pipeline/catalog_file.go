package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a stage catalog override. Workspaces
// that rename or recolor their pipeline stages ship a YAML file and point
// STAGE_CATALOG_FILE at it.
type catalogFile struct {
	Niches map[string][]Stage `yaml:"niches"`
}

// LoadCatalogOverrides replaces the built-in catalogs for any niches listed
// in the YAML file at path. Every override stage id must already map to a
// database status for its niche; otherwise records written under the
// override could not round-trip through the status column.
func LoadCatalogOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}
	for rawNiche, stages := range file.Niches {
		niche := Niche(rawNiche)
		if _, ok := stageCatalogs[niche]; !ok {
			return fmt.Errorf("unknown niche %q in catalog file", rawNiche)
		}
		if len(stages) == 0 {
			return fmt.Errorf("niche %q has an empty stage list", rawNiche)
		}
		for _, s := range stages {
			if s.ID == "" {
				return fmt.Errorf("niche %q has a stage with no id", rawNiche)
			}
			if _, ok := stageToStatus[niche][s.ID]; !ok {
				return fmt.Errorf("stage %q for niche %q has no database status mapping", s.ID, rawNiche)
			}
		}
		stageCatalogs[niche] = stages
	}
	return nil
}
