// Package config centralizes the presentation and hosting parameters of the
// terminal front-ends. Gameplay tuning lives in game.Config.
package config

import "time"

// Max render resolution - terminals larger than this get a centered,
// bordered play area instead of a stretched one.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 48
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// MaxFrameDelta caps the wall-clock delta fed to a session, so a stalled
// connection or a suspended process does not teleport entities.
const MaxFrameDelta = 250 * time.Millisecond

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownWaitTimeout    = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Scoreboard
const (
	TopScoresSize     = 5
	MaxUsernameLength = 16 // Maximum display length for usernames
)
