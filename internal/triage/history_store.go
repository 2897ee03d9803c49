package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

// maxHistoryMessages caps how much transcript is replayed into the model.
const maxHistoryMessages = 20

// HistoryStore persists chat transcripts per session in Redis.
type HistoryStore struct {
	redis *redis.Client
}

// NewHistoryStore creates a Redis-backed transcript store.
func NewHistoryStore(client *redis.Client) *HistoryStore {
	if client == nil {
		panic("triage: redis client cannot be nil")
	}
	return &HistoryStore{redis: client}
}

// Save persists the transcript for a session, trimmed to the most recent
// messages, with a rolling TTL.
func (s *HistoryStore) Save(ctx context.Context, sessionID string, history []ChatMessage) error {
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("triage: failed to marshal history: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(sessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("triage: failed to persist history: %w", err)
	}
	return nil
}

// Load returns the stored transcript for a session; an unknown session
// yields an empty history, not an error.
func (s *HistoryStore) Load(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("triage: failed to load history: %w", err)
	}

	var history []ChatMessage
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("triage: failed to decode history: %w", err)
	}
	return history, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("chat:%s", id)
}
