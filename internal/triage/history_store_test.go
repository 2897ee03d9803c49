package triage

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewHistoryStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestHistoryStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "hello"},
		{Role: ChatRoleAssistant, Content: "hi there"},
	}
	if err := store.Save(ctx, "sess-1", history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 || loaded[1].Content != "hi there" {
		t.Errorf("unexpected history: %+v", loaded)
	}
}

func TestHistoryStore_LoadUnknownSession(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected empty history, got %+v", loaded)
	}
}

func TestHistoryStore_TrimsLongTranscripts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var history []ChatMessage
	for i := 0; i < maxHistoryMessages+10; i++ {
		history = append(history, ChatMessage{Role: ChatRoleUser, Content: "msg"})
	}
	if err := store.Save(ctx, "sess-1", history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != maxHistoryMessages {
		t.Errorf("expected history trimmed to %d, got %d", maxHistoryMessages, len(loaded))
	}
}
