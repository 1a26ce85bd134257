package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat mirrors Manifest's shape for YAML decoding; items/configs/
// materials are lists on disk (so the file stays hand-editable) but
// indexed by ID in memory.
type fileFormat struct {
	Items             []Item             `yaml:"items"`
	ShipConfigs       []ShipConfig       `yaml:"ship_configs"`
	AsteroidMaterials []AsteroidMaterial `yaml:"asteroid_materials"`
}

// LoadFile reads and parses the static world-data manifest from path,
// loaded once at startup.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file %s: %w", path, err)
	}

	var raw fileFormat
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest file %s: %w", path, err)
	}

	m := New()
	for _, item := range raw.Items {
		m.AddItem(item)
	}
	for _, cfg := range raw.ShipConfigs {
		m.AddShipConfig(cfg)
	}
	for _, mat := range raw.AsteroidMaterials {
		m.AddAsteroidMaterial(mat)
	}
	return m, nil
}
