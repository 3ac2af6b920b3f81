package gameflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the session flow parameters: which UI set and asset
// category to preload, which scene to run additively, which screens the
// flow opens and closes, and which command restarts a session.
type Config struct {
	Name                string  `json:"name"                yaml:"name"`
	UISetID             string  `json:"uiSetId"             yaml:"uiSetId"`
	UIBudgetFraction    float64 `json:"uiBudgetFraction"    yaml:"uiBudgetFraction"`
	AssetCategory       string  `json:"assetCategory"       yaml:"assetCategory"`
	SceneName           string  `json:"sceneName"           yaml:"sceneName"`
	MainHUDScreen       string  `json:"mainHudScreen"       yaml:"mainHudScreen"`
	GameOverScreen      string  `json:"gameOverScreen"      yaml:"gameOverScreen"`
	RestartCommand      string  `json:"restartCommand"      yaml:"restartCommand"`
	ReleaseUnusedAssets bool    `json:"releaseUnusedAssets" yaml:"releaseUnusedAssets"`
}

// DefaultConfig returns the stock session flow configuration.
func DefaultConfig() Config {
	return Config{
		Name:                "game_session",
		UISetID:             "gameplay",
		UIBudgetFraction:    0.5,
		AssetCategory:       "gameplay",
		SceneName:           "gameplay",
		MainHUDScreen:       "main_hud",
		GameOverScreen:      "game_over",
		RestartCommand:      "restart_game",
		ReleaseUnusedAssets: true,
	}
}

// LoadConfig reads a flow configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses and validates a flow configuration from
// YAML bytes.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var config Config

	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration is complete and in range.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrConfigNameRequired
	}

	if c.UISetID == "" {
		return ErrUISetRequired
	}

	if c.UIBudgetFraction <= 0 || c.UIBudgetFraction > 1 {
		return fmt.Errorf("%w: %v", ErrUIBudgetOutOfRange, c.UIBudgetFraction)
	}

	if c.AssetCategory == "" {
		return ErrAssetCategoryRequired
	}

	if c.SceneName == "" {
		return ErrSceneRequired
	}

	if c.MainHUDScreen == "" {
		return fmt.Errorf("%w: main HUD", ErrScreenRequired)
	}

	if c.GameOverScreen == "" {
		return fmt.Errorf("%w: game over", ErrScreenRequired)
	}

	if c.RestartCommand == "" {
		return ErrRestartCommandRequired
	}

	return nil
}
