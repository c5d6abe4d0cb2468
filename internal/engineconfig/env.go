package engineconfig

import (
	"bufio"
	"os"
	"strings"
)

// LoadEnvFile reads the given file (e.g. ".env") and sets environment
// variables for each line of the form KEY=VALUE. Empty lines and lines
// starting with # are skipped. The file may be missing; that is not an error.
func LoadEnvFile(filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		if key == "" {
			continue
		}
		// Remove surrounding quotes if present
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

// ApplyEnvOverrides layers WORMHOLE_* environment variables over prefs:
// WORMHOLE_PRESET, WORMHOLE_SHOW_FPS, WORMHOLE_GRID, WORMHOLE_CHASE_BEHIND.
// Unset variables leave the corresponding pref untouched.
func ApplyEnvOverrides(p EnginePrefs) EnginePrefs {
	if v := os.Getenv("WORMHOLE_PRESET"); v != "" {
		p.Preset = v
	}
	if v, ok := envBool("WORMHOLE_SHOW_FPS"); ok {
		p.ShowFPS = v
	}
	if v, ok := envBool("WORMHOLE_GRID"); ok {
		p.GridVisible = v
	}
	if v, ok := envBool("WORMHOLE_CHASE_BEHIND"); ok {
		p.ChaseBehind = v
	}
	return p
}

func envBool(key string) (value, ok bool) {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
