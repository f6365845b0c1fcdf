package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

type UserConfig struct {
	Defaults Defaults `toml:"defaults"`
	Programs Programs `toml:"programs"`
}

type Defaults struct {
	// Principal is the user@REALM used when --username is omitted.
	Principal string `toml:"principal"`
}

type Programs struct {
	// KinitPaths overrides the candidate install locations for kinit.
	KinitPaths []string `toml:"kinit_paths,omitempty"`

	// KlistPaths overrides the candidate install locations for klist.
	KlistPaths []string `toml:"klist_paths,omitempty"`
}

// UserConfigPath returns the location of the user configuration file.
func UserConfigPath() string {
	return filepath.Join(UserWinkrbSettings.UserConfigsPath, "config.toml")
}

// LoadUserConfig loads the user configuration from the config file.
func LoadUserConfig() (*UserConfig, error) {
	configPath := UserConfigPath()

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := UserConfigPath()

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}
