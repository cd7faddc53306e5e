package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigPath is the project-relative override location.
const LocalConfigPath = "configs/owlrun.yaml"

// LoadRunner loads Owl Run configuration.
// Search order: customPath -> ~/.owlrun/configs/owlrun.yaml -> ./configs/owlrun.yaml -> embedded default.
// Files are decoded on top of the defaults, so partial files only override
// the keys they set. Only an explicit customPath can produce an error.
func LoadRunner(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		cfg, err := LoadRunnerFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), err
		}
		return cfg, nil
	}

	if userCfgPath := UserConfigPath("owlrun.yaml"); userCfgPath != "" {
		if cfg, err := LoadRunnerFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := LoadRunnerFile(LocalConfigPath); err == nil {
		return cfg, nil
	}

	cfg, err := ParseRunner(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadRunnerFile reads and validates a single YAML file.
func LoadRunnerFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseRunner(data)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseRunner decodes YAML over the defaults and validates the result.
func ParseRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".owlrun", "configs", filename)
}
