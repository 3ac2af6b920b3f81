package gameflow_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playforge/gamekit/gameflow"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	config := gameflow.DefaultConfig()
	require.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*gameflow.Config)
		wantErr error
	}{
		{"missing name", func(c *gameflow.Config) { c.Name = "" }, gameflow.ErrConfigNameRequired},
		{"missing ui set", func(c *gameflow.Config) { c.UISetID = "" }, gameflow.ErrUISetRequired},
		{"zero budget", func(c *gameflow.Config) { c.UIBudgetFraction = 0 }, gameflow.ErrUIBudgetOutOfRange},
		{"negative budget", func(c *gameflow.Config) { c.UIBudgetFraction = -0.1 }, gameflow.ErrUIBudgetOutOfRange},
		{"budget above one", func(c *gameflow.Config) { c.UIBudgetFraction = 1.5 }, gameflow.ErrUIBudgetOutOfRange},
		{"missing asset category", func(c *gameflow.Config) { c.AssetCategory = "" }, gameflow.ErrAssetCategoryRequired},
		{"missing scene", func(c *gameflow.Config) { c.SceneName = "" }, gameflow.ErrSceneRequired},
		{"missing hud screen", func(c *gameflow.Config) { c.MainHUDScreen = "" }, gameflow.ErrScreenRequired},
		{"missing game over screen", func(c *gameflow.Config) { c.GameOverScreen = "" }, gameflow.ErrScreenRequired},
		{"missing restart command", func(c *gameflow.Config) { c.RestartCommand = "" }, gameflow.ErrRestartCommandRequired},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := gameflow.DefaultConfig()
			tt.mutate(&config)

			require.ErrorIs(t, config.Validate(), tt.wantErr)
		})
	}
}

func TestConfig_FullBudgetIsAllowed(t *testing.T) {
	t.Parallel()

	config := gameflow.DefaultConfig()
	config.UIBudgetFraction = 1.0

	require.NoError(t, config.Validate())
}

func TestLoadConfigFromBytes(t *testing.T) {
	t.Parallel()

	yamlConfig := `
name: arcade_session
uiSetId: arcade
uiBudgetFraction: 0.25
assetCategory: arcade-assets
sceneName: arcade_level
mainHudScreen: arcade_hud
gameOverScreen: arcade_game_over
restartCommand: restart_arcade
releaseUnusedAssets: false
`

	config, err := gameflow.LoadConfigFromBytes([]byte(yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, "arcade_session", config.Name)
	assert.Equal(t, "arcade", config.UISetID)
	assert.InDelta(t, 0.25, config.UIBudgetFraction, 0.0001)
	assert.Equal(t, "arcade-assets", config.AssetCategory)
	assert.Equal(t, "arcade_level", config.SceneName)
	assert.Equal(t, "arcade_hud", config.MainHUDScreen)
	assert.Equal(t, "arcade_game_over", config.GameOverScreen)
	assert.Equal(t, "restart_arcade", config.RestartCommand)
	assert.False(t, config.ReleaseUnusedAssets)
}

func TestLoadConfigFromBytes_RejectsInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := gameflow.LoadConfigFromBytes([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadConfigFromBytes_RejectsIncompleteConfig(t *testing.T) {
	t.Parallel()

	_, err := gameflow.LoadConfigFromBytes([]byte("name: partial_session"))
	require.ErrorIs(t, err, gameflow.ErrUISetRequired)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := gameflow.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
