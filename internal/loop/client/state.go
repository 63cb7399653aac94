package client

import (
	"time"

	"github.com/tomz197/barco/internal/input"
	"github.com/tomz197/barco/internal/loop/server"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Final score and restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection screen state. The game itself lives in
// the driver's session.
type ClientState struct {
	Input     input.Input
	GameState GameState
	Running   bool // Client loop running

	LastRank     int                    // Scoreboard rank reached by the last game, 0 if none
	TopScores    []server.TopScoreEntry // Scoreboard as of the last game over
	PersonalBest int                    // Best score of this connection

	delta         time.Duration // Frame delta time
	lastFrame     time.Time
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the inactivity warning is showing

	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
