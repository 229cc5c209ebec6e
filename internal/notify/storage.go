package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/store"
)

// StorageKey is the key holding the serialized notification list.
const StorageKey = "app_notifications"

var (
	// errNoData means the key has never been written or was removed.
	errNoData = errors.New("no stored notifications")

	// errMalformed means the stored blob is not a JSON array of records.
	errMalformed = errors.New("malformed notification blob")
)

// Storage loads, saves and announces changes of the notification list.
type Storage interface {
	// Load returns the stored list, or the fallback set when nothing
	// usable is stored. It never fails.
	Load(ctx context.Context) []model.Notification

	// Save overwrites the stored list and signals listeners on success.
	Save(ctx context.Context, items []model.Notification) error

	// Subscribe registers fn to run after every successful Save in this
	// process and returns a function that removes it.
	Subscribe(fn func()) (unsubscribe func())
}

// KVStorage is the Storage backed by a store.KV and a Bus.
type KVStorage struct {
	kv       store.KV
	bus      *Bus
	now      func() time.Time
	fallback func() []model.Notification
}

// Option configures a KVStorage.
type Option func(*KVStorage)

// WithFallback replaces the sample set returned when nothing is stored.
func WithFallback(fn func() []model.Notification) Option {
	return func(s *KVStorage) { s.fallback = fn }
}

// WithClock sets the time the default sample set is dated from.
func WithClock(now func() time.Time) Option {
	return func(s *KVStorage) { s.now = now }
}

// NewKVStorage creates a Storage over kv. Signals are published on bus.
// Unless WithFallback is given, the sample set is dated once here so every
// consumer falls back to the same records.
func NewKVStorage(kv store.KV, bus *Bus, opts ...Option) *KVStorage {
	s := &KVStorage{
		kv:  kv,
		bus: bus,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fallback == nil {
		sample := SampleNotifications(s.now())
		s.fallback = func() []model.Notification { return clone(sample) }
	}
	return s
}

// read returns the stored list or one of errNoData, errMalformed, or a
// storage error.
func (s *KVStorage) read(ctx context.Context) ([]model.Notification, error) {
	raw, ok, err := s.kv.GetItem(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, errNoData
	}
	return Decode(raw)
}

// Load returns the stored list, falling back on missing, unreadable or
// malformed data.
func (s *KVStorage) Load(ctx context.Context) []model.Notification {
	items, err := s.read(ctx)
	if err != nil {
		if !errors.Is(err, errNoData) {
			log.Printf("notifications: using fallback: %v", err)
		}
		return s.fallback()
	}
	return items
}

// Save writes items and publishes EventNotificationsChanged.
func (s *KVStorage) Save(ctx context.Context, items []model.Notification) error {
	raw, err := Encode(items)
	if err != nil {
		return err
	}
	if err := s.kv.SetItem(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("saving notifications: %w", err)
	}
	s.bus.Publish(EventNotificationsChanged)
	return nil
}

// Subscribe registers fn on the bus.
func (s *KVStorage) Subscribe(fn func()) func() {
	return s.bus.Subscribe(EventNotificationsChanged, fn)
}

// Encode serializes items. A nil list encodes as an empty array.
func Encode(items []model.Notification) (string, error) {
	if items == nil {
		items = []model.Notification{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding notifications: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored blob. Anything other than a JSON array of
// notification objects is malformed.
func Decode(raw string) ([]model.Notification, error) {
	var items []model.Notification
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if items == nil {
		return nil, errMalformed
	}
	return items, nil
}

// Snapshotter is implemented by storages that can tell a missing list
// (answered with the fallback) apart from an unreadable one.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]model.Notification, error)
}

// Snapshot returns the stored list, the fallback when nothing is stored,
// or an error when the stored data cannot be read or parsed.
func (s *KVStorage) Snapshot(ctx context.Context) ([]model.Notification, error) {
	items, err := s.read(ctx)
	if errors.Is(err, errNoData) {
		return s.fallback(), nil
	}
	return items, err
}
