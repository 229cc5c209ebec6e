// Package sync notices writes to the shared key-value namespace and turns
// them into Bubble Tea messages.
//
// Writes made in this process are announced on the notify.Bus. Writes made
// by other processes sharing the same database are found by polling each
// watched key's revision; the watcher then republishes the key's event on
// the local bus so subscribers reconcile the same way in both cases.
package sync

import (
	"context"
	"log"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
)

// Origin tells where a change came from.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// WatchState represents the current state of the watcher.
type WatchState int

const (
	WatchIdle WatchState = iota
	WatchRunning
	WatchError
)

// WatchStatus holds the outcome of the last revision check.
type WatchStatus struct {
	State     WatchState
	LastCheck time.Time
	Error     error
}

// ChangedMsg is a tea.Msg sent when a watched key was written.
type ChangedMsg struct {
	Key    string
	Origin Origin
}

// checkTimeout bounds a single revision query.
const checkTimeout = 5 * time.Second

// defaultInterval is used when the configured interval is not positive.
const defaultInterval = time.Second

type watchedKey struct {
	key   string
	event string
}

// Watcher polls key revisions and listens to the local bus.
type Watcher struct {
	kv       store.KV
	bus      *notify.Bus
	interval time.Duration

	keys      []watchedKey
	revisions map[string]int64
	unsubs    []func()
	status    WatchStatus

	resultCh  chan ChangedMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a Watcher over kv that polls every interval.
func New(kv store.KV, bus *notify.Bus, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{
		kv:        kv,
		bus:       bus,
		interval:  interval,
		revisions: make(map[string]int64),
		resultCh:  make(chan ChangedMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Watch registers key. event is the bus event announcing local writes of
// key; it is also published when another process writes key.
func (w *Watcher) Watch(key, event string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keys = append(w.keys, watchedKey{key: key, event: event})
}

// Start records the current revisions, subscribes to the bus and starts
// polling. The returned command delivers the first ChangedMsg.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	keys := make([]watchedKey, len(w.keys))
	copy(keys, w.keys)
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()
	for _, k := range keys {
		rev, err := w.kv.Revision(ctx, k.key)
		if err != nil {
			log.Printf("sync: initial revision of %s: %v", k.key, err)
		}
		w.mu.Lock()
		w.revisions[k.key] = rev
		w.mu.Unlock()
	}

	for _, k := range keys {
		if k.event == "" {
			continue
		}
		k := k
		unsub := w.bus.Subscribe(k.event, func() { w.noteLocal(k.key) })
		w.mu.Lock()
		w.unsubs = append(w.unsubs, unsub)
		w.mu.Unlock()
	}

	go w.loop(keys)

	return w.waitForChange()
}

// Stop halts polling and drops bus subscriptions.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	for _, unsub := range w.unsubs {
		unsub()
	}
	w.unsubs = nil
	close(w.stopCh)
	w.running = false
}

// Refresh triggers an immediate revision check.
func (w *Watcher) Refresh() {
	select {
	case w.triggerCh <- struct{}{}:
	default:
	}
}

// Status returns the outcome of the last check.
func (w *Watcher) Status() WatchStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// WaitForNext returns a tea.Cmd that waits for the next ChangedMsg. Call it
// after handling each ChangedMsg to keep listening.
func (w *Watcher) WaitForNext() tea.Cmd {
	return w.waitForChange()
}

func (w *Watcher) loop(keys []watchedKey) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.check(keys)
		case <-w.triggerCh:
			w.check(keys)
		}
	}
}

// check compares every key's revision with the last one seen. Keys written
// elsewhere are announced as remote and republished on the bus.
func (w *Watcher) check(keys []watchedKey) {
	w.setStatus(WatchRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	var changed []watchedKey
	for _, k := range keys {
		rev, err := w.kv.Revision(ctx, k.key)
		if err != nil {
			w.setStatus(WatchError, err)
			return
		}
		w.mu.Lock()
		if rev != w.revisions[k.key] {
			w.revisions[k.key] = rev
			changed = append(changed, k)
		}
		w.mu.Unlock()
	}

	w.setStatus(WatchIdle, nil)

	for _, k := range changed {
		if k.event != "" {
			w.bus.Publish(k.event)
		}
		w.send(ChangedMsg{Key: k.key, Origin: OriginRemote})
	}
}

// noteLocal runs on the bus after a write in this process. Signals the
// watcher republished itself are recognised by an unchanged revision.
func (w *Watcher) noteLocal(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	rev, err := w.kv.Revision(ctx, key)
	if err != nil {
		log.Printf("sync: revision of %s: %v", key, err)
		return
	}

	w.mu.Lock()
	if rev == w.revisions[key] {
		w.mu.Unlock()
		return
	}
	w.revisions[key] = rev
	w.mu.Unlock()

	w.send(ChangedMsg{Key: key, Origin: OriginLocal})
}

func (w *Watcher) setStatus(state WatchState, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.status.State = state
	w.status.Error = err
	if state == WatchIdle {
		w.status.LastCheck = time.Now()
	}
}

// send delivers msg without blocking; messages are dropped when the
// channel is full.
func (w *Watcher) send(msg ChangedMsg) {
	select {
	case w.resultCh <- msg:
	default:
	}
}

func (w *Watcher) waitForChange() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-w.resultCh
		if !ok {
			return nil
		}
		return msg
	}
}
