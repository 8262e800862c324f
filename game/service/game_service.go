package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/pathgrid/game/engine"
)

// GameService defines all puzzle operations exposed to the transports
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Moves
	Rotate(ctx context.Context, sessionID string, slot engine.Slot, rotation *int) (*MoveResult, error)
	Swap(ctx context.Context, sessionID string, a, b engine.Slot) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Puzzle State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetNetwork(ctx context.Context, sessionID string) (*NetworkInfo, error)
	Validate(ctx context.Context, sessionID string) (*ValidationResult, error)
	Hint(ctx context.Context, sessionID string, limit int) (*HintResult, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Stateless evaluation of a layout
	Evaluate(ctx context.Context, layout []string) (*EvaluateResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.PuzzleConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.PuzzleConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.PuzzleConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.PuzzleConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	LastAccessed(id string) (time.Time, error)
}

// ConfigManager handles puzzle configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.PuzzleConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.PuzzleConfig
	SaveConfig(name string, config *engine.PuzzleConfig) error
}

// Session represents an active puzzle session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.PuzzleConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time // guarded by the SessionManager; read it through LastAccessed
}
