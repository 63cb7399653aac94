// Package server holds the state shared by every connected client: the
// client registry, the scoreboard and shutdown coordination. Each client
// plays its own game session; nothing here simulates the game.
package server

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/barco/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the hub.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID string)
	ReportScore(clientID string, result GameResult) (rank int)
	TopScores() []TopScoreEntry
	PersonalBest(clientID string) int
	Players() int
}

// Server is the in-memory hub shared by all connections.
type Server struct {
	mu           sync.RWMutex
	clients      map[string]*ClientHandle
	scores       []TopScoreEntry // Sorted best first, at most scoreSize entries
	scoreSize    int
	nextSeq      uint64
	shuttingDown bool
	log          *zap.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's registration with the hub.
type ClientHandle struct {
	ID       string
	Username string
	EventsCh chan ClientEvent // Closed when the client is unregistered
	best     int              // Best score reported by this client
}

// ClientEvent represents an event sent from the hub to a client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventScoreboardChanged
)

// GameResult is what a client reports when one of its games ends.
type GameResult struct {
	SessionID string
	Score     int
	Level     int
	PlayTime  float64 // Seconds
}

// NewServer creates a hub. A nil logger disables logging.
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		clients:   make(map[string]*ClientHandle),
		scoreSize: config.TopScoresSize,
		log:       log,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// A client registering during shutdown is told about it right away.
func (s *Server) RegisterClient(username string) *ClientHandle {
	handle := &ClientHandle{
		ID:       uuid.NewString(),
		Username: SanitizeUsername(username),
		EventsCh: make(chan ClientEvent, 16),
	}

	s.mu.Lock()
	s.clients[handle.ID] = handle
	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	players := len(s.clients)
	s.mu.Unlock()

	s.log.Info("client registered",
		zap.String("client_id", handle.ID),
		zap.String("username", handle.Username),
		zap.Int("players", players),
	)
	return handle
}

// UnregisterClient removes a client and closes its event channel.
// Unknown IDs are ignored.
func (s *Server) UnregisterClient(clientID string) {
	s.mu.Lock()
	handle, ok := s.clients[clientID]
	if ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
	players := len(s.clients)
	s.mu.Unlock()

	if ok {
		s.log.Info("client unregistered",
			zap.String("client_id", clientID),
			zap.Int("players", players),
		)
	}
}

// ReportScore records a finished game on the scoreboard. It returns the
// 1-based rank the result reached, or 0 if it did not make the board or the
// client is unknown.
func (s *Server) ReportScore(clientID string, result GameResult) (rank int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return 0
	}
	handle.best = max(handle.best, result.Score)

	s.nextSeq++
	entry := TopScoreEntry{
		Username:  handle.Username,
		Score:     result.Score,
		Level:     result.Level,
		SessionID: result.SessionID,
		seq:       s.nextSeq,
	}
	var inserted bool
	s.scores, rank, inserted = insertScore(s.scores, entry, s.scoreSize)

	s.log.Info("game finished",
		zap.String("client_id", clientID),
		zap.String("session_id", result.SessionID),
		zap.Int("score", result.Score),
		zap.Int("level", result.Level),
		zap.Float64("play_time", result.PlayTime),
		zap.Int("rank", rank),
	)

	if inserted {
		for _, h := range s.clients {
			select {
			case h.EventsCh <- ClientEvent{Type: EventScoreboardChanged}:
			default:
			}
		}
	}
	return rank
}

// TopScores returns a copy of the scoreboard, best first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TopScoreEntry, len(s.scores))
	copy(out, s.scores)
	return out
}

// PersonalBest returns the best score a client has reported since it
// registered, or 0 if the client is unknown.
func (s *Server) PersonalBest(clientID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.clients[clientID]; ok {
		return h.best
	}
	return 0
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients about the shutdown and waits for
// them to disconnect, up to the given timeout. It reports whether every
// client left in time.
func (s *Server) Shutdown(timeout time.Duration) bool {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	notified := len(s.clients)
	s.mu.Unlock()

	s.log.Info("shutdown started", zap.Int("players", notified), zap.Duration("timeout", timeout))

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return true
		}
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", zap.Int("players", s.Players()))
			return false
		case <-ticker.C:
		}
	}
}

// SanitizeUsername strips control characters and limits the name length.
// An empty result becomes "anonymous".
func SanitizeUsername(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(name))

	if runes := []rune(name); len(runes) > config.MaxUsernameLength {
		name = string(runes[:config.MaxUsernameLength])
	}
	if name == "" {
		return "anonymous"
	}
	return name
}
