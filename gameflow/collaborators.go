package gameflow

import (
	"context"

	"github.com/playforge/gamekit/eventbus"
)

// UI presents and loads screens. Open is asynchronous from the flow's
// perspective and invoked fire-and-forget; Close is synchronous. LoadSet
// loads a UI asset set within a fraction of the resource budget and is
// awaited as part of the session load.
type UI interface {
	Open(ctx context.Context, screenID string) error
	Close(ctx context.Context, screenID string) error
	LoadSet(ctx context.Context, setID string, budgetFraction float64) error
}

// AssetLoader preloads asset categories and optionally releases cached
// assets no longer referenced.
type AssetLoader interface {
	LoadAll(ctx context.Context, category string) error
	ReleaseUnused(ctx context.Context) error
}

// SceneLoader loads and unloads additive scenes.
type SceneLoader interface {
	LoadAdditive(ctx context.Context, name string) error
	Unload(ctx context.Context, name string) error
}

// Commands executes named commands. The flow consumes no return value
// beyond the synchronous error, which it logs and otherwise ignores.
type Commands interface {
	Execute(ctx context.Context, command string) error
}

// Gameplay toggles the gameplay simulation.
type Gameplay interface {
	Enable()
	Disable()
}

// Bus is the publish/subscribe transport the flow bridges to the machine.
// UnsubscribeAll must be idempotent and total per owner. *eventbus.Bus
// satisfies this interface.
type Bus interface {
	Subscribe(owner, category string, handler eventbus.Handler)
	UnsubscribeAll(owner string)
	Publish(ctx context.Context, msg eventbus.Message)
}

// Collaborators bundles the external services the flow calls into. All
// fields are required.
type Collaborators struct {
	UI       UI
	Assets   AssetLoader
	Scenes   SceneLoader
	Commands Commands
	Gameplay Gameplay
	Bus      Bus
}

func (c Collaborators) validate() error {
	switch {
	case c.UI == nil:
		return ErrUIRequired
	case c.Assets == nil:
		return ErrAssetLoaderRequired
	case c.Scenes == nil:
		return ErrSceneLoaderRequired
	case c.Commands == nil:
		return ErrCommandsRequired
	case c.Gameplay == nil:
		return ErrGameplayRequired
	case c.Bus == nil:
		return ErrBusRequired
	default:
		return nil
	}
}
