// Package mcp provides the Model Context Protocol interface for the pathgrid puzzle.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON response is rendered as text an AI agent can read.
//
// MCP Tools:
//   - create_session, get_session, list_sessions: session management
//   - grid_state: layout, validity and violations
//   - rotate, swap, reset_puzzle: puzzle moves
//   - network: paths and the entities they connect
//   - hint: rotation-only solutions from the current grid
//   - move_history: paginated audit log plus the current segment
//   - list_configs: available puzzles
//   - puzzle_instructions: rules, numbering and layout notation
//   - describe_slot: the path points, entities and degrees around one slot
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
