package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type presetsFile struct {
	Presets []Preset `yaml:"presets"`
}

// OverlayPresets replaces the preset list with the contents of an optional
// presets.yml next to the user config. Lets users keep a large shortcut
// collection out of the main config file.
func OverlayPresets(cfg *Config, presetsPath string) error {
	b, err := os.ReadFile(presetsPath)
	if err != nil {
		// Missing presets file should not kill startup
		return nil
	}

	var pf presetsFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return err
	}

	if len(pf.Presets) > 0 {
		cfg.Presets = pf.Presets
	}
	return nil
}
