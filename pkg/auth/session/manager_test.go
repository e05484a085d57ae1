package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) AccessSessionKey(accessID string) string { return "sz:session:access:" + accessID }

func newTestManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: prefixKeyer{}, ttl: time.Hour}, store
}

func TestGenerateAndHasSession(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	token, err := mgr.Generate(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected refresh token")
	}

	ok, err := mgr.HasSession(context.Background(), "jti-1")
	if err != nil || !ok {
		t.Fatalf("expected active session, got ok=%v err=%v", ok, err)
	}
	ok, err = mgr.HasSession(context.Background(), "unknown")
	if err != nil || ok {
		t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
	}
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	token, err := mgr.Generate(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newID, newToken, err := mgr.Rotate(context.Background(), "jti-1", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newID == "jti-1" || newToken == token {
		t.Fatal("rotation must issue fresh identifiers")
	}

	if ok, _ := mgr.HasSession(context.Background(), "jti-1"); ok {
		t.Fatal("old session must be revoked")
	}
	if ok, _ := mgr.HasSession(context.Background(), newID); !ok {
		t.Fatal("new session must exist")
	}
}

func TestRotateRejectsWrongToken(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	if _, err := mgr.Generate(context.Background(), "jti-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := mgr.Rotate(context.Background(), "jti-1", "forged"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	if _, err := mgr.Generate(context.Background(), "jti-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := mgr.Revoke(context.Background(), "jti-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := mgr.HasSession(context.Background(), "jti-1"); ok {
		t.Fatal("session should be gone after revoke")
	}
}
