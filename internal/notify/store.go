package notify

import (
	"context"
	"log"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/admin-panel/internal/model"
)

// Store is one consumer's copy of the notification list. Mutations persist
// the full list through the Storage; Reconcile adopts the stored list when
// it differs from the local copy.
type Store struct {
	mu      gosync.Mutex
	storage Storage
	items   []model.Notification

	now   func() time.Time
	newID func() string
}

// NewStore mounts a consumer: the local copy is seeded from storage.
func NewStore(ctx context.Context, storage Storage) *Store {
	return &Store{
		storage: storage,
		items:   storage.Load(ctx),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Items returns a copy of the local list in insertion order.
func (s *Store) Items() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

// Len returns the number of records in the local list.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (model.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Notification{}, false
}

// Counts returns the tab badge numbers for the local list.
func (s *Store) Counts() model.NotificationCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts(s.items)
}

// View returns the records visible under tab matching query.
func (s *Store) View(tab model.NotificationTab, query string) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View(s.items, tab, query)
}

// Recent returns up to n non-archived records.
func (s *Store) Recent(n int) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Recent(s.items, n)
}

// ToggleFavorite flips the favorite flag of id. It reports whether id exists.
func (s *Store) ToggleFavorite(ctx context.Context, id string) bool {
	return s.update(ctx, func(n *model.Notification) bool {
		if n.ID != id {
			return false
		}
		n.Favorite = !n.Favorite
		return true
	}) > 0
}

// ToggleArchive flips the archived flag of id. It reports whether id exists.
func (s *Store) ToggleArchive(ctx context.Context, id string) bool {
	return s.update(ctx, func(n *model.Notification) bool {
		if n.ID != id {
			return false
		}
		n.Archived = !n.Archived
		return true
	}) > 0
}

// ToggleRead flips the read flag of id. It reports whether id exists.
func (s *Store) ToggleRead(ctx context.Context, id string) bool {
	return s.update(ctx, func(n *model.Notification) bool {
		if n.ID != id {
			return false
		}
		n.Read = !n.Read
		return true
	}) > 0
}

// MarkRead sets read on id. It reports whether id existed unread.
func (s *Store) MarkRead(ctx context.Context, id string) bool {
	return s.MarkManyRead(ctx, []string{id}) > 0
}

// MarkManyRead sets read on every record in ids and returns how many
// records were unread.
func (s *Store) MarkManyRead(ctx context.Context, ids []string) int {
	set := idSet(ids)
	return s.update(ctx, func(n *model.Notification) bool {
		if !set[n.ID] || n.Read {
			return false
		}
		n.Read = true
		return true
	})
}

// MarkAllRead sets read on every unread non-archived record and returns
// how many there were. Archived records keep their read flag.
func (s *Store) MarkAllRead(ctx context.Context) int {
	return s.update(ctx, func(n *model.Notification) bool {
		if n.Archived || n.Read {
			return false
		}
		n.Read = true
		return true
	})
}

// DeleteOne removes id. It reports whether id existed.
func (s *Store) DeleteOne(ctx context.Context, id string) bool {
	return s.DeleteMany(ctx, []string{id}) > 0
}

// DeleteMany removes every record in ids and returns how many were removed.
func (s *Store) DeleteMany(ctx context.Context, ids []string) int {
	set := idSet(ids)

	s.mu.Lock()
	next := make([]model.Notification, 0, len(s.items))
	for _, it := range s.items {
		if !set[it.ID] {
			next = append(next, it)
		}
	}
	removed := len(s.items) - len(next)
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	s.items = next
	snapshot := clone(next)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return removed
}

// Add appends a new unread record stamped with the current time.
func (s *Store) Add(ctx context.Context, title, body string) model.Notification {
	s.mu.Lock()
	n := model.Notification{
		ID:    s.newID(),
		Title: title,
		Body:  body,
		Date:  s.now().Format(DateLayout),
	}
	s.items = append(clone(s.items), n)
	snapshot := clone(s.items)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return n
}

// Reconcile re-reads storage and replaces the local copy only when the
// serialized content differs. It reports whether the local copy changed.
// Unreadable or malformed data leaves the local copy untouched.
func (s *Store) Reconcile(ctx context.Context) bool {
	stored, err := s.snapshot(ctx)
	if err != nil {
		log.Printf("notifications: skipping reconcile: %v", err)
		return false
	}

	incoming, err := Encode(stored)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := Encode(s.items)
	if err != nil || current == incoming {
		return false
	}
	s.items = stored
	return true
}

// Follow reconciles this store after every signal from its storage and
// returns a function that stops following.
func (s *Store) Follow(ctx context.Context) (stop func()) {
	return s.storage.Subscribe(func() { s.Reconcile(ctx) })
}

// snapshot reads storage for reconciliation.
func (s *Store) snapshot(ctx context.Context) ([]model.Notification, error) {
	if sn, ok := s.storage.(Snapshotter); ok {
		return sn.Snapshot(ctx)
	}
	return s.storage.Load(ctx), nil
}

// update applies fn to every record, persisting when at least one record
// was changed. It returns the number of records fn reported as changed.
func (s *Store) update(ctx context.Context, fn func(*model.Notification) bool) int {
	s.mu.Lock()
	next := clone(s.items)
	changed := 0
	for i := range next {
		if fn(&next[i]) {
			changed++
		}
	}
	if changed == 0 {
		s.mu.Unlock()
		return 0
	}
	s.items = next
	snapshot := clone(next)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return changed
}

// persist writes items; failures are logged and dropped.
func (s *Store) persist(ctx context.Context, items []model.Notification) {
	if err := s.storage.Save(ctx, items); err != nil {
		log.Printf("notifications: write dropped: %v", err)
	}
}

func clone(items []model.Notification) []model.Notification {
	if items == nil {
		return nil
	}
	out := make([]model.Notification, len(items))
	copy(out, items)
	return out
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
