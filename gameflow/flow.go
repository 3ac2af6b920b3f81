package gameflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/playforge/gamekit/eventbus"
	"github.com/playforge/gamekit/future"
	"github.com/playforge/gamekit/statechart"
)

// Flow is one gameplay session sequenced through the statechart engine.
// Each flow instance owns a unique bus-subscription owner token, so
// unsubscribing at session end is idempotent and total regardless of the
// path taken to get there.
type Flow struct {
	config  Config
	col     Collaborators
	machine *statechart.Machine
	owner   string
	logger  *slog.Logger
}

// Option configures a Flow.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	onFailure statechart.FailureHandler
}

// WithLogger sets the flow logger; it also backs the machine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFailureHandler sets the handler for fatal load failures. When the
// session load fails the machine halts; the owning process decides what
// failure state to surface.
func WithFailureHandler(handler statechart.FailureHandler) Option {
	return func(o *options) {
		o.onFailure = handler
	}
}

// New validates the configuration and collaborators and builds the
// session chart. The machine does not run until Start.
func New(config Config, col Collaborators, opts ...Option) (*Flow, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := col.validate(); err != nil {
		return nil, err
	}

	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	f := &Flow{
		config: config,
		col:    col,
		owner:  "gameflow-" + uuid.NewString(),
		logger: o.logger,
	}

	chart, err := f.buildChart()
	if err != nil {
		return nil, err
	}

	machineOpts := []statechart.Option{
		statechart.WithLogger(statechart.NewSlogLogger(f.logger)),
	}

	if o.onFailure != nil {
		machineOpts = append(machineOpts, statechart.WithFailureHandler(o.onFailure))
	}

	f.machine = statechart.NewMachine(chart, machineOpts...)

	return f, nil
}

// buildChart declares the session graph. Hooks close over the flow; the
// machine is assigned before Start, so no hook can observe it nil.
func (f *Flow) buildChart() (*statechart.Chart, error) {
	b := statechart.NewBuilder(f.config.Name)

	b.Initial(NodeBoot).
		OnExit(f.subscribeAll).
		To(NodeLoading)

	b.AsyncWait(NodeLoading, f.load).
		Then(NodeGameOverCheck)

	b.Choice(NodeGameOverCheck).
		OnEntry(f.enableGameplay, f.publishInitialized).
		When(f.sessionAlreadyOver, NodeGameOver).
		Otherwise(NodeGameplay)

	b.Simple(NodeGameplay).
		OnEntry(f.openScreen(f.config.MainHUDScreen)).
		OnExit(f.closeScreen(f.config.MainHUDScreen)).
		On(EventGameOver, NodeGameOver).
		On(EventGameComplete, NodeGameOver)

	b.Simple(NodeGameOver).
		OnEntry(f.disableGameplay, f.openScreen(f.config.GameOverScreen)).
		OnExit(f.closeScreen(f.config.GameOverScreen)).
		On(EventRestartClicked, NodeGameOverCheck, statechart.WithAction(f.executeRestart)).
		On(EventMenuClicked, NodeSessionEnded)

	b.Final(NodeSessionEnded).
		OnEntry(f.unloadScene, f.unsubscribeAll)

	return b.Build()
}

// Start begins the session: the machine enters the chart, subscriptions
// are acquired, and the load starts. Returns once the machine settles on
// the loading wait.
func (f *Flow) Start(ctx context.Context) error {
	return f.machine.Start(ctx)
}

// Trigger delivers an event token to the session machine.
func (f *Flow) Trigger(ctx context.Context, event statechart.Event) {
	f.machine.Trigger(ctx, event)
}

// TriggerFunc exposes the machine's trigger for subsystems that deliver
// tokens directly.
func (f *Flow) TriggerFunc() func(ctx context.Context, event statechart.Event) {
	return f.machine.TriggerFunc()
}

// State returns the name of the active chart node.
func (f *Flow) State() string {
	return f.machine.Current()
}

// Done reports whether the session has ended.
func (f *Flow) Done() bool {
	return f.machine.Done()
}

// Err returns the fatal error that halted the session, if any.
func (f *Flow) Err() error {
	return f.machine.Err()
}

// Owner returns the flow's bus-subscription owner token.
func (f *Flow) Owner() string {
	return f.owner
}

// subscribeAll bridges the four external categories into machine triggers.
// Handlers hold only the trigger entry point, never chart internals.
func (f *Flow) subscribeAll(_ context.Context) {
	bindings := []struct {
		category string
		event    statechart.Event
	}{
		{CategoryGameOver, EventGameOver},
		{CategoryGameCompleted, EventGameComplete},
		{CategoryRestartClicked, EventRestartClicked},
		{CategoryMenuClicked, EventMenuClicked},
	}

	trigger := f.machine.TriggerFunc()

	for _, binding := range bindings {
		event := binding.event

		f.col.Bus.Subscribe(f.owner, binding.category, func(ctx context.Context, _ eventbus.Message) {
			trigger(ctx, event)
		})
	}
}

// load is the loading node's operation: UI set load and asset preload
// start concurrently, the additive scene load is awaited first, then the
// two loads are joined, then unused assets are optionally released. A
// single failed leg aborts the whole load; there is no partial recovery.
func (f *Flow) load(ctx context.Context) error {
	uiFut := future.GoContext(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f.col.UI.LoadSet(ctx, f.config.UISetID, f.config.UIBudgetFraction)
	})

	assetFut := future.GoContext(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f.col.Assets.LoadAll(ctx, f.config.AssetCategory)
	})

	if err := f.col.Scenes.LoadAdditive(ctx, f.config.SceneName); err != nil {
		return err
	}

	if _, err := future.AwaitAll(ctx, uiFut, assetFut); err != nil {
		return err
	}

	if f.config.ReleaseUnusedAssets {
		return f.col.Assets.ReleaseUnused(ctx)
	}

	return nil
}

// sessionAlreadyOver guards the direct route to the game-over screen.
// A session never starts already over, so this is a fixed false: the
// check node always routes restarts back through gameplay.
func (f *Flow) sessionAlreadyOver(_ context.Context) bool {
	return false
}

func (f *Flow) enableGameplay(_ context.Context) {
	f.col.Gameplay.Enable()
}

func (f *Flow) disableGameplay(_ context.Context) {
	f.col.Gameplay.Disable()
}

func (f *Flow) publishInitialized(ctx context.Context) {
	f.col.Bus.Publish(ctx, eventbus.Message{Category: CategoryGameInitialized})
}

// openScreen returns an entry hook that opens a screen fire-and-forget:
// the flow does not block on, or fail with, UI presentation. Failures are
// logged and accepted.
func (f *Flow) openScreen(screenID string) statechart.Hook {
	return func(ctx context.Context) {
		future.AsyncContextWithError(ctx, func(ctx context.Context) error {
			return f.col.UI.Open(ctx, screenID)
		})
	}
}

// closeScreen returns an exit hook that closes a screen synchronously.
func (f *Flow) closeScreen(screenID string) statechart.Hook {
	return func(ctx context.Context) {
		if err := f.col.UI.Close(ctx, screenID); err != nil {
			f.logger.WarnContext(ctx, "Failed to close screen",
				"screen", screenID,
				"error", err,
			)
		}
	}
}

func (f *Flow) executeRestart(ctx context.Context) {
	if err := f.col.Commands.Execute(ctx, f.config.RestartCommand); err != nil {
		f.logger.ErrorContext(ctx, "Restart command failed",
			"command", f.config.RestartCommand,
			"error", err,
		)
	}
}

func (f *Flow) unloadScene(ctx context.Context) {
	if err := f.col.Scenes.Unload(ctx, f.config.SceneName); err != nil {
		f.logger.WarnContext(ctx, "Failed to unload scene",
			"scene", f.config.SceneName,
			"error", err,
		)
	}
}

// unsubscribeAll releases every subscription this flow instance holds.
// Keyed by owner, not by individual handles, so it is safe on any exit
// path, including before any subscription was made.
func (f *Flow) unsubscribeAll(_ context.Context) {
	f.col.Bus.UnsubscribeAll(f.owner)
}
