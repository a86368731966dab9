// Package store is the entity cache shared by every view: one latest known
// value per (entity kind, query parameters) key, with request de-duplication,
// dispatch-sequence staleness ordering and manual invalidation. The store is
// the single writer of view state; views only read snapshots.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNoFetcher is returned when a key is refetched before any fetcher was
// registered for it.
var ErrNoFetcher = errors.New("store: no fetcher registered for key")

// Max snapshot ages. An entry older than its kind's age is treated like an
// invalidated one on the next read, so keys the standing pollers cannot
// enumerate (per-driver queues, per-query order lists, per-driver stats) are
// still re-fetched on the polling cadence instead of being served forever.
const (
	alertsMaxAge  = 5 * time.Second
	defaultMaxAge = 10 * time.Second
)

// Kind names an entity type held in the cache.
type Kind string

const (
	KindDrivers      Kind = "drivers"
	KindFleetSummary Kind = "fleet_summary"
	KindDriverStats  Kind = "driver_stats"
	KindOrders       Kind = "orders"
	KindDriverOrders Kind = "driver_orders"
	KindOrderStats   Kind = "order_stats"
	KindAlerts       Kind = "alerts"
)

// FetchFunc loads the current backend value for a key.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Reconciler merges an incoming value with the previously cached one, so a
// kind can veto regressions (order status, alert acknowledgement) record by
// record.
type Reconciler func(prev, next interface{}) interface{}

// Snapshot is a point-in-time read of a cache entry. Err carries the last
// fetch failure while Value retains the last good result, so a transient
// backend outage degrades to a stale-but-present view instead of a blank one.
type Snapshot struct {
	Value     interface{}
	Err       error
	Stale     bool
	FetchedAt time.Time
	Seq       uint64
}

// ApplyHook observes every applied cache update. The websocket feed hangs off
// this to re-broadcast poll results.
type ApplyHook func(key string, kind Kind, snap Snapshot)

type inflight struct {
	seq   uint64
	done  chan struct{}
	value interface{}
	err   error
}

type entry struct {
	kind       Kind
	value      interface{}
	hasValue   bool
	err        error
	stale      bool
	fetchedAt  time.Time
	appliedSeq uint64
	inflight   *inflight
	fetch      FetchFunc
}

// Store holds the per-key cache entries.
type Store struct {
	mu          sync.Mutex
	entries     map[string]*entry
	nextSeq     uint64
	reconcilers map[Kind]Reconciler
	maxAge      map[Kind]time.Duration
	hooks       []ApplyHook
	log         *logrus.Logger
}

// New creates a store with the default per-kind reconcilers registered.
func New(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{
		entries:     make(map[string]*entry),
		reconcilers: make(map[Kind]Reconciler),
		maxAge:      make(map[Kind]time.Duration),
		log:         log,
	}
	s.reconcilers[KindOrders] = reconcileOrders
	s.reconcilers[KindDriverOrders] = reconcileOrders
	s.reconcilers[KindAlerts] = reconcileAlerts
	s.maxAge[KindAlerts] = alertsMaxAge
	return s
}

// SetMaxAge overrides how long a kind's snapshots may serve reads before a
// refetch is forced.
func (s *Store) SetMaxAge(kind Kind, age time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxAge[kind] = age
}

// expired reports whether an entry outlived its kind's max age.
// Caller holds the lock.
func (s *Store) expired(e *entry) bool {
	age, ok := s.maxAge[e.kind]
	if !ok {
		age = defaultMaxAge
	}
	return time.Since(e.fetchedAt) > age
}

// AddApplyHook registers a hook called after every applied update.
func (s *Store) AddApplyHook(h ApplyHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// Read returns the current snapshot for a key without fetching.
func (s *Store) Read(key string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.hasValue {
		return Snapshot{}, false
	}
	return snapshotOf(e), true
}

// Refetch loads the key. Concurrent callers for the same key share the single
// in-flight request unless the entry was invalidated meanwhile, in which case
// a fresh request is dispatched with a higher sequence number and the older
// response is discarded on arrival.
func (s *Store) Refetch(ctx context.Context, key string, kind Kind, fetch FetchFunc) (interface{}, error) {
	s.mu.Lock()
	e := s.ensure(key, kind)
	if fetch != nil {
		e.fetch = fetch
	}
	if e.inflight != nil && !e.stale {
		fl := e.inflight
		s.mu.Unlock()
		<-fl.done
		return fl.value, fl.err
	}
	doFetch := e.fetch
	if doFetch == nil {
		s.mu.Unlock()
		return nil, ErrNoFetcher
	}
	s.nextSeq++
	fl := &inflight{seq: s.nextSeq, done: make(chan struct{})}
	e.inflight = fl
	e.stale = false
	s.mu.Unlock()

	value, err := doFetch(ctx)

	s.mu.Lock()
	if e.inflight == fl {
		e.inflight = nil
	}
	applied, snap := s.apply(e, fl.seq, value, err)
	hooks := s.hooks
	s.mu.Unlock()

	fl.value, fl.err = value, err
	close(fl.done)

	if applied {
		for _, h := range hooks {
			h(key, kind, snap)
		}
	}
	return value, err
}

// ReadOrRefetch returns the cached snapshot, fetching first when the key is
// missing, invalidated, or older than its kind's max age. Invalidation bounds
// post-action staleness to one round trip; the age bound keeps reads on the
// polling cadence even for keys no standing poller covers.
func (s *Store) ReadOrRefetch(ctx context.Context, key string, kind Kind, fetch FetchFunc) Snapshot {
	s.mu.Lock()
	e, ok := s.entries[key]
	fresh := ok && e.hasValue && !e.stale && !s.expired(e)
	s.mu.Unlock()
	if !fresh {
		s.Refetch(ctx, key, kind, fetch)
	}
	snap, _ := s.Read(key)
	return snap
}

// Invalidate marks keys stale; the next read refetches.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			e.stale = true
		}
	}
}

// InvalidateKind marks every key of an entity kind stale. Local writes use
// this because they cannot know which query parameter combinations are live.
func (s *Store) InvalidateKind(kinds ...Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		for _, k := range kinds {
			if e.kind == k {
				e.stale = true
				break
			}
		}
	}
}

func (s *Store) ensure(key string, kind Kind) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{kind: kind}
		s.entries[key] = e
	}
	return e
}

// apply installs a fetch result unless a newer response was applied already.
// Caller holds the lock.
func (s *Store) apply(e *entry, seq uint64, value interface{}, err error) (bool, Snapshot) {
	if seq < e.appliedSeq {
		s.log.WithFields(logrus.Fields{
			"kind":    e.kind,
			"seq":     seq,
			"applied": e.appliedSeq,
		}).Debug("discarding out-of-order response")
		return false, Snapshot{}
	}
	e.appliedSeq = seq
	e.fetchedAt = time.Now()
	if err != nil {
		e.err = err
		e.stale = true
		return true, snapshotOf(e)
	}
	if rec := s.reconcilers[e.kind]; rec != nil && e.hasValue {
		value = rec(e.value, value)
	}
	e.value = value
	e.hasValue = true
	e.err = nil
	e.stale = false
	return true, snapshotOf(e)
}

func snapshotOf(e *entry) Snapshot {
	return Snapshot{
		Value:     e.value,
		Err:       e.err,
		Stale:     e.stale,
		FetchedAt: e.fetchedAt,
		Seq:       e.appliedSeq,
	}
}
