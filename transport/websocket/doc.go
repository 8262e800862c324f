// Package websocket pushes puzzle state to browsers and other live viewers.
//
// A central Hub tracks viewers per session. A viewer first receives a
// "snapshot" of the current grid. After every accepted rotate, swap or reset
// the API calls BroadcastToSession, and each viewer of that session receives
// a "state_update", or "solved" once the grid passes validation:
//
//	{"session_id": "3f9a1c07", "event": "state_update", "layout": ["B0 B1 .", ". . .", ". . ."],
//	 "valid": false, "violations": 2, "game_state": {...}}
//
// Clients connect to /ws?session=<id>. Incoming frames are read only to
// keep the connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Close()
//	server := api.NewServer(gameService, hub)
package websocket
