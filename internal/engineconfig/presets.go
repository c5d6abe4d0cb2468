package engineconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wormhole/internal/path"
)

// PresetsPath is the tunnel preset file, relative to the working directory.
const PresetsPath = "assets/presets.yaml"

// ScenePreset bundles the tunnel shape with the obstacle spawn tuning for
// one named scene variant.
type ScenePreset struct {
	Tunnel          path.TunnelParams `yaml:"tunnel"`
	SpawnIntervalMs int               `yaml:"spawn_interval_ms"`
	PoolSize        int               `yaml:"pool_size"`
}

// BuiltinPresets are the presets available without a preset file. "classic"
// is the plain centerline circle; "spiral" winds inside the tube.
func BuiltinPresets() map[string]ScenePreset {
	return map[string]ScenePreset{
		"classic": {
			Tunnel:          path.DefaultTunnelParams(),
			SpawnIntervalMs: 5000,
			PoolSize:        60,
		},
		"spiral": {
			Tunnel: path.TunnelParams{
				MajorRadius:  100,
				TubeRadius:   23,
				Samples:      256,
				SpiralTurns:  6,
				SpiralRadius: 12,
			},
			SpawnIntervalMs: 5000,
			PoolSize:        60,
		},
	}
}

// LoadPresets reads assets/presets.yaml and merges it over the builtins, so
// a preset file can override or extend without having to restate everything.
// A missing or invalid file yields the builtins alone.
func LoadPresets() map[string]ScenePreset {
	presets := BuiltinPresets()
	data, err := os.ReadFile(PresetsPath)
	if err != nil {
		return presets
	}
	var fromFile map[string]ScenePreset
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return presets
	}
	for name, p := range fromFile {
		presets[name] = p
	}
	return presets
}

// ResolvePreset returns the named preset, or the classic preset with an
// error naming the miss so the caller can log and continue degraded.
func ResolvePreset(presets map[string]ScenePreset, name string) (ScenePreset, error) {
	if p, ok := presets[name]; ok {
		return fill(p), nil
	}
	return fill(presets["classic"]), fmt.Errorf("unknown preset %q, using classic", name)
}

// fill backstops zero values so a sparse preset file entry still works.
func fill(p ScenePreset) ScenePreset {
	if p.SpawnIntervalMs <= 0 {
		p.SpawnIntervalMs = 5000
	}
	if p.PoolSize <= 0 {
		p.PoolSize = 60
	}
	if p.Tunnel.Samples == 0 && p.Tunnel.MajorRadius == 0 {
		p.Tunnel = path.DefaultTunnelParams()
	}
	return p
}
