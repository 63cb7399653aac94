// Package client runs one player's terminal: input, the game session, the
// screens around it and rendering.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/barco/internal/draw"
	"github.com/tomz197/barco/internal/game"
	"github.com/tomz197/barco/internal/input"
	"github.com/tomz197/barco/internal/loop"
	"github.com/tomz197/barco/internal/loop/config"
	"github.com/tomz197/barco/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	driver       *loop.Driver
	keys         *input.KeySet
	game         game.Config
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	log          *zap.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Game         *game.Config // Defaults to game.DefaultConfig()
	Logger       *zap.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	cfg := game.DefaultConfig()
	if opts.Game != nil {
		cfg = *opts.Game
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	handle := gs.RegisterClient(opts.Username)
	log = log.With(zap.String("client_id", handle.ID))

	// Canvas maps the game surface onto the clamped terminal area
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, cfg.Width, cfg.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		keys:         input.NewKeySet(),
		game:         cfg,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     handle.Username,
		termSizeFunc: termSizeFunc,
		log:          log,
	}
	c.driver = loop.NewDriver(c.newSession, config.MaxFrameDelta)
	return c
}

// newSession is the driver's session factory.
func (c *Client) newSession() (*game.Session, error) {
	return game.New(c.game, c.keys, game.WithLogger(c.log))
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	// Unregister even if the loop fails
	defer c.server.UnregisterClient(c.handle.ID)

	for c.state.Running {
		frameStart := time.Now()

		if err := c.step(frameStart, input.ReadInput(c.inputStream)); err != nil {
			c.log.Error("frame failed", zap.Error(err))
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// step runs one frame at time now with the given input.
func (c *Client) step(now time.Time, in input.Input) error {
	if !c.state.lastFrame.IsZero() {
		c.state.delta = now.Sub(c.state.lastFrame)
	}
	c.state.lastFrame = now

	c.processInput(now, in)
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		if err := c.updateStartState(now); err != nil {
			return err
		}
	case GameStatePlaying:
		if err := c.updatePlayingState(now); err != nil {
			return err
		}
	case GameStateGameOver:
		if err := c.updateGameOverState(now); err != nil {
			return err
		}
	case GameStateShutdown:
		c.updateShutdownState()
	}

	return c.drawFrame(now)
}

// processInput records the frame's input, tracks inactivity and feeds the
// held keys to the session.
func (c *Client) processInput(now time.Time, in input.Input) {
	c.state.Input = in

	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case len(in.Pressed) > 0:
		c.lastInput = now
		c.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.log.Info("disconnecting inactive client")
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
	}

	c.keys.Apply(in)
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventScoreboardChanged:
				c.state.TopScores = c.server.TopScores()
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 0)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 0)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState(now time.Time) error {
	if c.state.Input.Space || c.state.Input.Enter {
		return c.startGame(now)
	}
	return nil
}

// updatePlayingState advances the session and moves to the game over
// screen once it ends.
func (c *Client) updatePlayingState(now time.Time) error {
	if err := c.driver.Tick(now); err != nil {
		return fmt.Errorf("tick: %w", err)
	}

	s := c.driver.Session()
	if s.State() != game.GameOver {
		return nil
	}

	snap := s.Snapshot()
	c.state.LastRank = c.server.ReportScore(c.handle.ID, server.GameResult{
		SessionID: snap.ID,
		Score:     snap.Score,
		Level:     snap.Level,
		PlayTime:  snap.PlayTime,
	})
	c.state.TopScores = c.server.TopScores()
	c.state.PersonalBest = c.server.PersonalBest(c.handle.ID)
	c.state.GameState = GameStateGameOver
	input.ResetKeyInput(c.inputStream)
	return nil
}

// updateGameOverState handles the game over screen.
func (c *Client) updateGameOverState(now time.Time) error {
	switch {
	case c.state.Input.Space || c.state.Input.Enter:
		return c.startGame(now)
	case c.state.Input.Escape:
		c.state.GameState = GameStateStart
	}
	return nil
}

// startGame starts or restarts the game with a brand new session.
func (c *Client) startGame(now time.Time) error {
	input.ResetKeyInput(c.inputStream)
	c.keys.Clear()

	if err := c.driver.Restart(now); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	c.state.LastRank = 0
	c.state.GameState = GameStatePlaying
	c.log.Info("game started", zap.String("session_id", c.driver.Session().ID()))
	return nil
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
