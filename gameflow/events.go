// Package gameflow wires a single gameplay session onto the statechart
// engine: load assets, run gameplay, react to game-over, allow restart or
// exit to the menu. The flow owns no game logic itself; it sequences
// external collaborators (UI, asset and scene loading, command execution,
// gameplay simulation) through the chart
//
//	boot -> loading -> game_over_check -> {gameplay <-> game_over} -> session_ended
//
// and bridges bus messages into the machine's trigger.
package gameflow

import "github.com/playforge/gamekit/statechart"

// Event tokens consumed by the session chart. GameOver and GameComplete
// are public so other subsystems holding the trigger function can deliver
// them directly.
const (
	// EventGameOver signals the session was lost.
	EventGameOver statechart.Event = "game_over"
	// EventGameComplete signals the session was won.
	EventGameComplete statechart.Event = "game_complete"
	// EventRestartClicked signals the restart button on the game-over screen.
	EventRestartClicked statechart.Event = "restart_clicked"
	// EventMenuClicked signals the menu button on the game-over screen.
	EventMenuClicked statechart.Event = "menu_clicked"
)

// Bus categories bridged into the chart, plus the notification the flow
// publishes once a session is initialized.
const (
	CategoryGameOver        = "game-over-occurred"
	CategoryGameCompleted   = "game-completed"
	CategoryRestartClicked  = "restart-button-clicked"
	CategoryMenuClicked     = "menu-button-clicked"
	CategoryGameInitialized = "game-initialized"
)

// Node names of the session chart, exported for observability and tests.
const (
	NodeBoot          = "boot"
	NodeLoading       = "loading"
	NodeGameOverCheck = "game_over_check"
	NodeGameplay      = "gameplay"
	NodeGameOver      = "game_over"
	NodeSessionEnded  = "session_ended"
)
