package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
)

// StorageKey holds the serialized session.
const StorageKey = "app_auth"

// EventAuthChanged is published after the session was written or cleared.
const EventAuthChanged = "app_auth_changed"

// Session persists the signed-in user and token.
type Session struct {
	kv  store.KV
	bus *notify.Bus
}

// NewSession creates a Session over kv.
func NewSession(kv store.KV, bus *notify.Bus) *Session {
	return &Session{kv: kv, bus: bus}
}

// Load returns the stored session. Missing, unreadable or malformed data
// yields an empty session.
func (s *Session) Load(ctx context.Context) model.AuthState {
	raw, ok, err := s.kv.GetItem(ctx, StorageKey)
	if err != nil {
		log.Printf("auth: reading session: %v", err)
		return model.AuthState{}
	}
	if !ok || raw == "" {
		return model.AuthState{}
	}

	var state model.AuthState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		log.Printf("auth: parsing session: %v", err)
		return model.AuthState{}
	}
	return state
}

// Save writes state.
func (s *Session) Save(ctx context.Context, state model.AuthState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.kv.SetItem(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	s.bus.Publish(EventAuthChanged)
	return nil
}

// Clear removes the stored session.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.kv.RemoveItem(ctx, StorageKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.bus.Publish(EventAuthChanged)
	return nil
}
