package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the path to the engine config file, relative to the
// process working directory.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds engine-only preferences (debug overlays, grid, camera
// style, tunnel preset). Persisted across runs.
type EnginePrefs struct {
	ShowFPS      bool   `json:"show_fps"`
	ShowMemAlloc bool   `json:"show_memalloc"`
	GridVisible  bool   `json:"grid_visible"`
	Preset       string `json:"preset,omitempty"`
	ChaseBehind  bool   `json:"chase_behind"`
}

// Default returns default engine preferences (overlays off, grid off inside
// the tunnel, chase camera behind the drone, classic tunnel preset).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		GridVisible:  false,
		Preset:       "classic",
		ChaseBehind:  true,
	}
}

// Load reads engine preferences from config/engine.json. If the file is
// missing or invalid, returns Default() and does not create a file.
func Load() (EnginePrefs, error) {
	data, err := os.ReadFile(EngineConfigPath)
	if err != nil {
		return Default(), nil
	}
	var p EnginePrefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	if p.Preset == "" {
		p.Preset = Default().Preset
	}
	return p, nil
}

// Save writes engine preferences to config/engine.json, creating the config
// directory if needed.
func Save(p EnginePrefs) error {
	dir := filepath.Dir(EngineConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(EngineConfigPath, data, 0644)
}
