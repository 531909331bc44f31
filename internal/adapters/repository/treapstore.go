package repository

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/steady/internal/domain/model"
	"github.com/okian/steady/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: timestamp ASC, then id ASC (the engine's processing order).
// In-order traversal therefore produces the chronological history, and
// edits in the middle of the history stay O(log n) expected.

// key orders events chronologically with id as tiebreak.
type key struct {
	ts int64 // unix milliseconds
	id int64
}

func keyOf(ev model.ActivityEvent) key {
	return key{ts: ev.TS.UnixMilli(), id: ev.ID}
}

// less reports whether a orders strictly before b in the history.
func (a key) less(b key) bool {
	if a.ts != b.ts {
		return a.ts < b.ts
	}
	return a.id < b.id
}

// treap node
type node struct {
	key   key
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, k key, prio uint64) *node {
	if n == nil {
		return &node{key: k, prio: prio, size: 1}
	}
	if k.less(n.key) {
		n.left = insert(n.left, k, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, k, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, k key) *node {
	if n == nil {
		return nil
	}
	switch {
	case k == n.key:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, k)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, k)
		}
	case k.less(n.key):
		n.left = deleteNode(n.left, k)
	default:
		n.right = deleteNode(n.right, k)
	}
	fix(n)
	return n
}

// collect appends all events in chronological order.
func collect(n *node, byID map[int64]model.ActivityEvent, out *[]model.ActivityEvent) {
	if n == nil {
		return
	}
	collect(n.left, byID, out)
	if ev, ok := byID[n.key.id]; ok {
		*out = append(*out, ev)
	}
	collect(n.right, byID, out)
}

// TreapStore is a thread-safe in-memory Store. Mutations run under a
// write lock; reads go through an atomically published snapshot so the
// engine always sees a consistent history.
type TreapStore struct {
	mu     sync.RWMutex
	root   *node
	byID   map[int64]model.ActivityEvent
	nextID int64
	seed   []model.ActivityEvent
	rng    *rand.Rand

	snapshot atomic.Pointer[[]model.ActivityEvent]
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(ctx context.Context, opts ...Option) (*TreapStore, error) {
	s := &TreapStore{
		byID:   make(map[int64]model.ActivityEvent),
		nextID: 1,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // priorities only balance the treap
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.seed) > 0 {
		if err := s.load(s.seed); err != nil {
			return nil, err
		}
		s.seed = nil
	}
	s.publishLocked()
	return s, nil
}

// load rebuilds the tree and index from the given history.
// Caller must hold the write lock (or be the constructor).
func (s *TreapStore) load(events []model.ActivityEvent) error {
	root := (*node)(nil)
	byID := make(map[int64]model.ActivityEvent, len(events))
	next := s.nextID
	for _, ev := range events {
		if _, exists := byID[ev.ID]; exists {
			return ErrDuplicateID
		}
		byID[ev.ID] = ev
		root = insert(root, keyOf(ev), s.rng.Uint64())
		if ev.ID >= next {
			next = ev.ID + 1
		}
	}
	s.root = root
	s.byID = byID
	s.nextID = next
	return nil
}

// publishLocked rebuilds and publishes the ordered snapshot.
// Caller must hold the write lock (or be the constructor).
func (s *TreapStore) publishLocked() {
	out := make([]model.ActivityEvent, 0, len(s.byID))
	collect(s.root, s.byID, &out)
	s.snapshot.Store(&out)
	metrics.UpdateEventsStored(len(out))
}

// Append implements Store.Append with O(log n) expected time.
func (s *TreapStore) Append(ctx context.Context, ev model.ActivityEvent) (model.ActivityEvent, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = s.nextID
	s.nextID++
	s.byID[ev.ID] = ev
	s.root = insert(s.root, keyOf(ev), s.rng.Uint64())
	s.publishLocked()
	return ev, nil
}

// Update implements Store.Update. The event keeps its id; timestamp and
// payload may change, so the tree position is re-derived.
func (s *TreapStore) Update(ctx context.Context, ev model.ActivityEvent) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[ev.ID]
	if !ok {
		return ErrNotFound
	}
	s.root = deleteNode(s.root, keyOf(old))
	s.byID[ev.ID] = ev
	s.root = insert(s.root, keyOf(ev), s.rng.Uint64())
	s.publishLocked()
	return nil
}

// Delete implements Store.Delete.
func (s *TreapStore) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	s.root = deleteNode(s.root, keyOf(old))
	delete(s.byID, id)
	s.publishLocked()
	return nil
}

// Get returns the stored event with the given id.
func (s *TreapStore) Get(ctx context.Context, id int64) (model.ActivityEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.byID[id]
	if !ok {
		return model.ActivityEvent{}, ErrNotFound
	}
	return ev, nil
}

// All returns the full history in processing order. The returned slice
// is a published snapshot and must not be modified.
func (s *TreapStore) All(ctx context.Context) []model.ActivityEvent {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if snap := s.snapshot.Load(); snap != nil {
		return *snap
	}
	return nil
}

// Recent returns up to n of the newest events, oldest first.
func (s *TreapStore) Recent(ctx context.Context, n int) ([]model.ActivityEvent, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}
	all := s.All(ctx)
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

// ReplaceAll implements Store.ReplaceAll: the whole history is swapped
// under one lock and one snapshot publish.
func (s *TreapStore) ReplaceAll(ctx context.Context, events []model.ActivityEvent) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(events); err != nil {
		return err
	}
	s.publishLocked()
	return nil
}

// Count returns the total number of stored events.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
