package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/plan-systems/klog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wricardo/mcp-training/pathgrid/game/engine"
)

// ErrConfigUnavailable is returned when a session asks for a config that
// the ConfigManager cannot provide.
var ErrConfigUnavailable = errors.New("config not available")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) info(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	lastAccessed, err := s.sessions.LastAccessed(sess.ID)
	if err != nil {
		lastAccessed = sess.CreatedAt
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: lastAccessed,
		GameState:      sess.Engine.Snapshot(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new puzzle session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.PuzzleConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("%w: config '%s' (%v). Available configs: %v", ErrConfigUnavailable, configName, err, configIDs)
			}
			return nil, fmt.Errorf("%w: config '%s': %v", ErrConfigUnavailable, configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	activeSessions.Inc()
	klog.Infof("[SESSION] created id=%s config=%s", sess.ID, config.Name)

	return s.info(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	// Expiry happens inside the session manager, so resync the gauge here.
	activeSessions.Set(float64(len(sessions)))
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	activeSessions.Dec()
	klog.Infof("[SESSION] deleted id=%s", sessionID)
	return nil
}

// touch looks up a session and refreshes its access time. Callers hold mu,
// read or write; the access time itself is guarded by the session manager.
func (s *gameServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		klog.Warningf("failed to update last access for session %s: %v", sessionID, err)
	}
	return sess, nil
}

// Rotate turns the tile in one slot. A nil rotation advances one step.
func (s *gameServiceImpl) Rotate(ctx context.Context, sessionID string, slot engine.Slot, rotation *int) (*MoveResult, error) {
	return s.apply(sessionID, engine.RotateMove(slot, rotation))
}

// Swap exchanges the tiles in two slots
func (s *gameServiceImpl) Swap(ctx context.Context, sessionID string, a, b engine.Slot) (*MoveResult, error) {
	return s.apply(sessionID, engine.SwapMove(a, b))
}

func (s *gameServiceImpl) apply(sessionID string, move engine.Move) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	wasValid := sess.Engine.IsValid()
	timer := prometheus.NewTimer(moveDuration)
	accepted, err := sess.Engine.Apply(move)
	timer.ObserveDuration()
	if err != nil {
		movesTotal.WithLabelValues(string(move.Kind), resultError).Inc()
		klog.Warningf("[MOVE] session=%s move=%q error=%v", sessionID, move, err)
		return nil, err
	}

	state := sess.Engine.Snapshot()
	result := &MoveResult{
		Success:   accepted,
		Move:      move,
		GameState: state,
		Message:   state.Message,
	}

	now := time.Now()
	if !accepted {
		movesTotal.WithLabelValues(string(move.Kind), resultRejected).Inc()
		result.Events = append(result.Events, GameEvent{Type: "rejected", Message: state.Message, Timestamp: now})
		klog.Infof("[MOVE] session=%s move=%q rejected: %s", sessionID, move, state.Message)
		return result, nil
	}

	movesTotal.WithLabelValues(string(move.Kind), resultAccepted).Inc()
	result.Events = append(result.Events, GameEvent{Type: string(move.Kind), Message: move.String(), Timestamp: now})
	if state.Valid && !wasValid {
		puzzlesSolved.Inc()
		result.Events = append(result.Events, GameEvent{Type: "solved", Message: state.Message, Timestamp: now})
	}
	klog.Infof("[MOVE] session=%s move=%q valid=%v violations=%d", sessionID, move, state.Valid, len(state.Violations))

	return result, nil
}

// Reset restores a session's starting grid
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset().Clone()
	klog.Infof("[RESET] session=%s config=%s", sessionID, sess.Config.Name)
	return state, nil
}

// GetGameState retrieves the current puzzle state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Snapshot(), nil
}

// GetNetwork returns the path network of the session's grid
func (s *gameServiceImpl) GetNetwork(ctx context.Context, sessionID string) (*NetworkInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return networkInfo(sess.Engine.GetNetwork()), nil
}

func networkInfo(network engine.PathNetworkState) *NetworkInfo {
	info := &NetworkInfo{
		Network:           network,
		Paths:             network.Paths(),
		ConnectedEntities: network.ConnectedEntities(),
		TotalDegree:       network.TotalDegree(),
	}
	if info.Paths == nil {
		info.Paths = [][]engine.PathPoint{}
	}
	if info.ConnectedEntities == nil {
		info.ConnectedEntities = [][]engine.Entity{}
	}
	return info
}

// Validate reports the violations of the session's current network
func (s *gameServiceImpl) Validate(ctx context.Context, sessionID string) (*ValidationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return validationResult(sess.Engine.GetViolations()), nil
}

func validationResult(violations []engine.Violation) *ValidationResult {
	if violations == nil {
		violations = []engine.Violation{}
	}
	return &ValidationResult{Valid: len(violations) == 0, Violations: violations}
}

// Hint lists up to limit rotation-only solutions from the current grid
func (s *gameServiceImpl) Hint(ctx context.Context, sessionID string, limit int) (*HintResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	solutions, err := sess.Engine.Hint(limit)
	if err != nil {
		return nil, err
	}
	if solutions == nil {
		solutions = []engine.Solution{}
	}
	return &HintResult{Solvable: len(solutions) > 0, Solutions: solutions}, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	return paginate(sess.Engine.GetMoveHistory(), opts), nil
}

func paginate(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > engine.MaxHistoryPageSize {
		opts.Limit = engine.MaxHistoryPageSize
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

// Evaluate parses a layout and reports its network without touching any session
func (s *gameServiceImpl) Evaluate(ctx context.Context, layout []string) (*EvaluateResult, error) {
	grid, err := engine.ParseLayout(layout)
	if err != nil {
		return nil, err
	}

	network, err := engine.CalculatePathNetwork(grid)
	if err != nil {
		return nil, err
	}

	info := networkInfo(network)
	validation := validationResult(engine.Validate(network))
	evaluationsTotal.WithLabelValues(strconv.FormatBool(validation.Valid)).Inc()

	return &EvaluateResult{
		Layout:            engine.FormatLayout(grid),
		Grid:              grid,
		Network:           network,
		Paths:             info.Paths,
		ConnectedEntities: info.ConnectedEntities,
		Valid:             validation.Valid,
		Violations:        validation.Violations,
	}, nil
}

// ListConfigs returns available puzzle configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific puzzle configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.PuzzleConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a puzzle configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.PuzzleConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	klog.Infof("[CONFIG] saved %s", configName)
	return nil
}
