// Package api provides the HTTP REST API for path puzzles.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Several sessions at once (?sessionIds=a,b or ?configName=x)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Puzzle Operations:
//   - GET /api/sessions/{id}/state - Current grid, network and violations
//   - POST /api/sessions/{id}/rotate - {"slot": 4} or {"slot": 4, "rotation": 2}
//   - POST /api/sessions/{id}/swap - {"a": 0, "b": 8}
//   - POST /api/sessions/{id}/reset - Restore the starting layout
//   - GET /api/sessions/{id}/network - Components, paths and connected entities
//   - GET /api/sessions/{id}/validate - Violations by path point
//   - GET /api/sessions/{id}/hint - Rotation-only solutions (?limit=N)
//   - GET /api/sessions/{id}/history - Move history (?page=&limit=&order=)
//
// Evaluation:
//   - POST /api/evaluate - {"layout": ["B0 B3 .", ". . .", ". . ."]}
//
// Configuration:
//   - GET /api/configs - List available puzzles
//   - POST /api/configs - Save a puzzle
//   - GET /api/configs/{name} - Get one puzzle
//
// Other:
//   - GET /api/health - Liveness check
//   - GET /metrics - Prometheus metrics
//   - GET /ws?session={id} - WebSocket state updates
//
// Errors are returned as JSON with the HTTP status code repeated:
//
//	{"error": "slot 9: invalid slot", "code": 400}
//
// A rejected move (locked or empty slot) is not an error: the response is
// 200 with "success": false and the player message.
package api
