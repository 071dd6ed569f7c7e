package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Overrides is the on-disk shape for catalog customization. Every table is
// optional; present entries replace or add to the built-in records by key.
type Overrides struct {
	Materials   map[string]MaterialProperties  `json:"materials,omitempty"`
	Kerf        map[string]KerfProperties      `json:"kerf,omitempty"`
	Structural  map[string]StructuralLimits    `json:"structural,omitempty"`
	Dimensional map[string]DimensionalLimits   `json:"dimensional,omitempty"`
	Machines    map[string]MachineCapabilities `json:"machines,omitempty"`
	Settings    map[string]MachineSettings     `json:"settings,omitempty"`
}

// LoadOverrides reads a JSON override file and applies it on top of the
// built-in tables, swapping the merged snapshot in atomically. A missing
// file is not an error; the catalog keeps its current tables.
func (c *Catalog) LoadOverrides(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var ov Overrides
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse catalog overrides %s: %w", path, err)
	}

	merged := mergeTables(builtinTables(), ov)
	return c.Reload(merged)
}

// mergeTables overlays override records onto a base table set. The base maps
// are copied first so existing snapshots are never touched.
func mergeTables(base Tables, ov Overrides) Tables {
	merged := Tables{
		Materials:   copyMap(base.Materials),
		Kerf:        copyMap(base.Kerf),
		Structural:  copyMap(base.Structural),
		Dimensional: copyMap(base.Dimensional),
		Machines:    copyMap(base.Machines),
		Settings:    copyMap(base.Settings),
		Recommended: base.Recommended,
	}
	for k, v := range ov.Materials {
		v.Key = k
		merged.Materials[k] = v
	}
	for k, v := range ov.Kerf {
		merged.Kerf[k] = v
	}
	for k, v := range ov.Structural {
		merged.Structural[k] = v
	}
	for k, v := range ov.Dimensional {
		merged.Dimensional[k] = v
	}
	for k, v := range ov.Machines {
		merged.Machines[k] = v
	}
	for k, v := range ov.Settings {
		merged.Settings[k] = v
	}
	return merged
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
