package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/barco/internal/draw"
	"github.com/tomz197/barco/internal/game"
	"github.com/tomz197/barco/internal/loop/config"
)

// drawFrame draws the current frame. A terminal with no usable area is
// skipped without error.
func (c *Client) drawFrame(now time.Time) error {
	if c.canvas.Empty() {
		return c.chunkWriter.Flush()
	}

	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snap, ok := c.driver.Snapshot()
	showWorld := ok && (c.state.GameState == GameStatePlaying || c.state.GameState == GameStateGameOver)
	if showWorld {
		drawSnapshot(c.canvas, snap)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(now, snap, showWorld)

	return c.chunkWriter.Flush()
}

// text writes s at a 1-based canvas position and lets the canvas erase it
// on the next frame.
func (c *Client) text(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

func (c *Client) coloredText(col, row int, color draw.Color, s string) {
	c.chunkWriter.WriteColored(col, row, color, s)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

// centered writes s centered on column centerX.
func (c *Client) centered(centerX, row int, s string) {
	c.text(centerX-len([]rune(s))/2, row, s)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(now time.Time, snap game.Snapshot, showWorld bool) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(now, centerX, centerY)
		return
	}

	if showWorld {
		c.drawHUD(termWidth, termHeight, snap)
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(now, centerX, centerY)
	case GameStateGameOver:
		c.drawGameOverScreen(now, centerX, centerY, snap)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(now time.Time, centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")

	left := int(config.InactivityDisconnectUser - now.Sub(c.lastInput).Seconds())
	c.centered(centerX, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", max(left, 0)))
	c.centered(centerX, centerY+2, "Press any key to continue")
}

// blink reports whether blinking prompts are visible at now.
func blink(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(now time.Time, centerX, centerY int) {
	titleArt := []string{
		` ___   _   ___  ___ ___  `,
		`| _ ) /_\ | _ \/ __/ _ \ `,
		`| _ \/ _ \|   / (_| (_) |`,
		`|___/_/ \_\_|_\\___\___/ `,
	}

	titleStartY := centerY - 7
	for i, line := range titleArt {
		c.coloredText(centerX-len(line)/2, titleStartY+i, draw.ColorYellow, line)
	}

	c.centered(centerX, titleStartY+len(titleArt)+1, "~ Dodge the cannonballs, grab the life rings ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.centered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W / Up  . . . .  Move up",
		"S / Down  . .  Move down",
		"SPACE  . . . . . . Start",
		"Q  . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, controlsY+1+i, line)
	}

	if blink(now) {
		c.centered(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<")
	}
}

// drawHUD draws score, lives and level over the game.
// Fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth, termHeight int, snap game.Snapshot) {
	c.text(2, 1, fmt.Sprintf("Score: %-8d", snap.Score))

	level := fmt.Sprintf("Level: %-3d", snap.Level)
	c.text(termWidth/2-len(level)/2, 1, level)

	lives := fmt.Sprintf("Lives: %-3d", snap.Lives)
	c.coloredText(termWidth-len(lives)-1, 1, draw.ColorGreen, lives)

	if termHeight > 2 {
		c.text(2, termHeight, levelBar(snap, 20))
		players := fmt.Sprintf("Players: %-4d", c.server.Players())
		c.text(termWidth-len(players)-1, termHeight, players)
	}
}

// levelBar renders progress through the current level as a fixed-width bar.
func levelBar(snap game.Snapshot, width int) string {
	frac := 0.0
	if snap.LevelDuration > 0 {
		frac = min(max(snap.LevelElapsed/snap.LevelDuration, 0), 1)
	}
	filled := int(frac * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// drawGameOverScreen draws the final score, the scoreboard and the restart prompt.
func (c *Client) drawGameOverScreen(now time.Time, centerX, centerY int, snap game.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.coloredText(centerX-len(line)/2, titleStartY+i, draw.ColorRed, line)
	}

	row := titleStartY + len(titleArt) + 1
	c.centered(centerX, row, fmt.Sprintf("Score: %d   Level: %d", snap.Score, snap.Level))
	row++
	c.centered(centerX, row, fmt.Sprintf("Dodged %d  Hit %d  Rings %d",
		snap.Stats.EnemiesDodged, snap.Stats.EnemiesHit, snap.Stats.FriendsCollected))
	row++
	c.centered(centerX, row, fmt.Sprintf("Your best: %d", c.state.PersonalBest))

	if c.state.LastRank > 0 {
		row++
		msg := fmt.Sprintf("New top score! #%d", c.state.LastRank)
		c.coloredText(centerX-len(msg)/2, row, draw.ColorYellow, msg)
	}

	if len(c.state.TopScores) > 0 {
		row += 2
		c.centered(centerX, row, "Top Scores")
		for i, e := range c.state.TopScores {
			row++
			c.centered(centerX, row, fmt.Sprintf("%d. %-*s %8d", i+1, config.MaxUsernameLength, e.Username, e.Score))
		}
	}

	row += 2
	if blink(now) {
		c.centered(centerX, row, ">>  Press SPACE to Restart  <<")
	}
	c.centered(centerX, row+1, "ESC for title, Q to quit")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.centered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.centered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.centered(centerX, centerY+4, "Press Q to disconnect now")
}
