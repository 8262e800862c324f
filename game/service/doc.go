// Package service provides the business logic layer for path puzzles.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Move processing (rotate and swap) with per-move events
//   - Network, validation and hint queries
//   - Stateless layout evaluation
//   - Move history pagination
//   - Prometheus metrics for moves and evaluations
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages puzzle configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own engine
// instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Rotate(ctx, info.ID, 4, nil)
package service
