package gameflow

import "errors"

// Configuration and wiring errors. All are detected before the flow
// starts; a flow that fails New is not usable.
var (
	// ErrUIRequired indicates no UI collaborator was provided.
	ErrUIRequired = errors.New("ui collaborator is required")
	// ErrAssetLoaderRequired indicates no asset loader was provided.
	ErrAssetLoaderRequired = errors.New("asset loader collaborator is required")
	// ErrSceneLoaderRequired indicates no scene loader was provided.
	ErrSceneLoaderRequired = errors.New("scene loader collaborator is required")
	// ErrCommandsRequired indicates no command service was provided.
	ErrCommandsRequired = errors.New("commands collaborator is required")
	// ErrGameplayRequired indicates no gameplay controller was provided.
	ErrGameplayRequired = errors.New("gameplay collaborator is required")
	// ErrBusRequired indicates no event bus was provided.
	ErrBusRequired = errors.New("bus collaborator is required")

	// ErrConfigNameRequired indicates the config has no session name.
	ErrConfigNameRequired = errors.New("config name is required")
	// ErrUISetRequired indicates no UI set id is configured.
	ErrUISetRequired = errors.New("ui set id is required")
	// ErrUIBudgetOutOfRange indicates the UI budget fraction is not in (0, 1].
	ErrUIBudgetOutOfRange = errors.New("ui budget fraction must be in (0, 1]")
	// ErrAssetCategoryRequired indicates no asset category is configured.
	ErrAssetCategoryRequired = errors.New("asset category is required")
	// ErrSceneRequired indicates no scene name is configured.
	ErrSceneRequired = errors.New("scene name is required")
	// ErrScreenRequired indicates a screen id is missing.
	ErrScreenRequired = errors.New("screen id is required")
	// ErrRestartCommandRequired indicates no restart command is configured.
	ErrRestartCommandRequired = errors.New("restart command is required")
)
