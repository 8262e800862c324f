package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/pathgrid/game/engine"
)

func createTestConfig() *engine.PuzzleConfig {
	config := engine.DefaultPuzzleConfig()
	config.Name = "Test Config"
	return config
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Error("Expected engine to be initialized")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != SessionIDLength {
			t.Errorf("Expected %d-character session ID, got %q", SessionIDLength, session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		if _, err := manager.Create("test-session", config); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		if _, err := manager.Create("TEST-SESSION", config); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		if _, err := manager.Create(" padded ", config); !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.Name = ""
		if _, err := manager.Create("invalid-test", invalidConfig); err == nil {
			t.Error("Expected error for invalid config")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, err := manager.Create("get-test", createTestConfig())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		if _, err := manager.Get("GET-TEST"); err != nil {
			t.Errorf("Expected case-insensitive lookup, got %v", err)
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		if _, err := manager.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	first, err := manager.GetOrCreate("shared", config)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := manager.GetOrCreate("shared", config)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if first != second {
		t.Error("Expected GetOrCreate to return the existing session")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_ListAndDelete(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	for _, id := range []string{"one", "two", "three"} {
		if _, err := manager.Create(id, config); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].CreatedAt.Before(sessions[i-1].CreatedAt) {
			t.Error("Expected sessions ordered by creation time")
		}
	}

	if err := manager.Delete("TWO"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := manager.Delete("two"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
	if manager.Count() != 2 {
		t.Errorf("Expected 2 sessions, got %d", manager.Count())
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, _ := manager.Create("touch", createTestConfig())
	before := session.LastAccessedAt

	time.Sleep(5 * time.Millisecond)
	if err := manager.UpdateLastAccessed("touch"); err != nil {
		t.Fatalf("UpdateLastAccessed: %v", err)
	}
	after, err := manager.LastAccessed("TOUCH")
	if err != nil {
		t.Fatalf("LastAccessed: %v", err)
	}
	if !after.After(before) {
		t.Error("Expected LastAccessedAt to advance")
	}
	if _, err := manager.LastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	stale, _ := manager.Create("stale", config)
	manager.Create("fresh", config)
	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	if removed := manager.CleanupExpiredSessions(time.Hour); removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}
	if _, err := manager.Get("stale"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected stale session to be gone")
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Error("Expected fresh session to remain")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i)
			if _, err := manager.Create(id, config); err != nil {
				t.Errorf("Create(%s): %v", id, err)
				return
			}
			manager.Get(id)
			manager.UpdateLastAccessed(id)
			manager.List()
		}(i)
	}
	wg.Wait()

	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}
