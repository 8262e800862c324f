// Package session provides in-memory session management for path puzzles.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management and expiry
//
// Each session owns its own engine.GameEngine, so sessions never share a
// grid. IDs are the first 8 hex characters of a random UUID and lookups
// ignore case.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// Sessions are not persisted; restarting the process drops them.
package session
