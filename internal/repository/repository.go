package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

// Repository is the cache-aside orchestrator over a remote and a local store.
type Repository struct {
	remote types.DataSource
	local  types.DataSource
	log    *zap.Logger

	mu    sync.Mutex
	cache *cache // nil until first use
	dirty bool

	inflight sync.WaitGroup
}

var _ types.DataSource = (*Repository)(nil)

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a Repository over the given stores.
func New(remote, local types.DataSource, opts ...Option) (*Repository, error) {
	if remote == nil || local == nil {
		return nil, types.ErrNilDataSource
	}
	r := &Repository{
		remote: remote,
		local:  local,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type listResult struct {
	items []types.Vocabulary
	err   error
}

type getResult struct {
	item types.Optional[types.Vocabulary]
	err  error
}

// List returns the full collection.
//
// A present, clean cache answers without touching either store. After
// Refresh the answer comes from the remote store alone. Otherwise both
// stores are read concurrently; a non-empty local result wins, and an empty
// one defers to the remote result. Cancelling ctx abandons the wait but not
// the fetches.
func (r *Repository) List(ctx context.Context) ([]types.Vocabulary, error) {
	r.mu.Lock()
	if r.cache != nil && !r.dirty {
		items := r.cache.values()
		r.mu.Unlock()
		r.log.Debug("list served from cache", zap.Int("count", len(items)))
		return items, nil
	}
	dirty := r.dirty
	r.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	var answered atomic.Bool
	var g errgroup.Group

	r.inflight.Add(1)
	remoteCh := make(chan listResult, 1)
	g.Go(func() error {
		items, err := r.fetchRemote(bg)
		remoteCh <- listResult{items, err}
		return err
	})

	if dirty {
		r.track(&g, "list", &answered)
		r.log.Debug("cache dirty, listing from remote")
		return awaitList(ctx, remoteCh, &answered)
	}

	localCh := make(chan listResult, 1)
	g.Go(func() error {
		items, err := r.fetchLocal(bg)
		localCh <- listResult{items, err}
		return err
	})
	r.track(&g, "list", &answered)

	select {
	case res := <-localCh:
		if res.err != nil {
			return nil, res.err
		}
		if len(res.items) > 0 {
			answered.Store(true)
			r.log.Debug("list served from local", zap.Int("count", len(res.items)))
			return res.items, nil
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r.log.Debug("local store empty, waiting for remote")
	return awaitList(ctx, remoteCh, &answered)
}

func awaitList(ctx context.Context, ch <-chan listResult, answered *atomic.Bool) ([]types.Vocabulary, error) {
	select {
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		answered.Store(true)
		return res.items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetchRemote lists the remote store, persists every entry locally and
// upserts it into the cache. A successful fetch clears the dirty flag.
func (r *Repository) fetchRemote(ctx context.Context) ([]types.Vocabulary, error) {
	items, err := r.remote.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range items {
		if err := r.local.Save(ctx, v); err != nil {
			r.log.Warn("persisting remote entry locally", zap.String("id", v.ID), zap.Error(err))
		}
	}

	r.mu.Lock()
	c := r.ensureCacheLocked()
	for _, v := range items {
		c.put(v)
	}
	r.dirty = false
	r.mu.Unlock()

	if items == nil {
		items = []types.Vocabulary{}
	}
	return items, nil
}

// fetchLocal lists the local store and upserts every entry into the cache.
func (r *Repository) fetchLocal(ctx context.Context) ([]types.Vocabulary, error) {
	items, err := r.local.List(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	c := r.ensureCacheLocked()
	for _, v := range items {
		c.put(v)
	}
	r.mu.Unlock()

	if items == nil {
		items = []types.Vocabulary{}
	}
	return items, nil
}

// Get returns the entry with the given id, or Absent.
//
// A cache hit answers immediately. Otherwise both stores are queried
// concurrently and the first Present answer wins, local first when both are
// ready. A remote hit is also saved locally.
func (r *Repository) Get(ctx context.Context, id string) (types.Optional[types.Vocabulary], error) {
	none := types.Absent[types.Vocabulary]()
	if id == "" {
		return none, types.ErrInvalidID
	}

	r.mu.Lock()
	if r.cache != nil {
		if v, ok := r.cache.get(id); ok {
			r.mu.Unlock()
			r.log.Debug("get served from cache", zap.String("id", id))
			return types.Present(v), nil
		}
	}
	r.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	var answered atomic.Bool
	var g errgroup.Group

	localCh := make(chan getResult, 1)
	remoteCh := make(chan getResult, 1)
	r.inflight.Add(1)
	g.Go(func() error {
		item, err := r.local.Get(bg, id)
		if err == nil {
			if v, ok := item.Get(); ok {
				r.upsert(v)
			}
		}
		localCh <- getResult{item, err}
		return err
	})
	g.Go(func() error {
		item, err := r.remote.Get(bg, id)
		if err == nil {
			if v, ok := item.Get(); ok {
				if err := r.local.Save(bg, v); err != nil {
					r.log.Warn("persisting remote entry locally", zap.String("id", id), zap.Error(err))
				}
				r.upsert(v)
			}
		}
		remoteCh <- getResult{item, err}
		return err
	})
	r.track(&g, "get", &answered)

	for localCh != nil || remoteCh != nil {
		var (
			res  getResult
			from string
		)
		// A ready local answer takes precedence over a ready remote one.
		select {
		case res = <-localCh:
			localCh, from = nil, "local"
		default:
			select {
			case res = <-localCh:
				localCh, from = nil, "local"
			case res = <-remoteCh:
				remoteCh, from = nil, "remote"
			case <-ctx.Done():
				return none, ctx.Err()
			}
		}

		if res.err != nil {
			return none, res.err
		}
		if res.item.IsPresent() {
			answered.Store(true)
			r.log.Debug("get served", zap.String("id", id), zap.String("from", from))
			return res.item, nil
		}
	}
	r.log.Debug("get found nothing", zap.String("id", id))
	return none, nil
}

// Save writes v to both stores and the cache.
func (r *Repository) Save(ctx context.Context, v types.Vocabulary) error {
	if v.ID == "" {
		return types.ErrInvalidID
	}
	err := r.writeThrough(func(s types.DataSource) error { return s.Save(ctx, v) })
	r.upsert(v)
	return err
}

// Complete marks v completed in both stores and caches the completed value.
func (r *Repository) Complete(ctx context.Context, v types.Vocabulary) error {
	if v.ID == "" {
		return types.ErrInvalidID
	}
	err := r.writeThrough(func(s types.DataSource) error { return s.Complete(ctx, v) })
	r.upsert(v.AsCompleted())
	return err
}

// CompleteByID completes the cached entry with the given id. An id that is
// not cached is ignored.
func (r *Repository) CompleteByID(ctx context.Context, id string) error {
	v, ok := r.cached(id)
	if !ok {
		r.log.Debug("complete by id: not cached", zap.String("id", id))
		return nil
	}
	return r.Complete(ctx, v)
}

// Activate marks v active in both stores and caches the active value.
func (r *Repository) Activate(ctx context.Context, v types.Vocabulary) error {
	if v.ID == "" {
		return types.ErrInvalidID
	}
	err := r.writeThrough(func(s types.DataSource) error { return s.Activate(ctx, v) })
	r.upsert(v.AsActive())
	return err
}

// ActivateByID activates the cached entry with the given id. An id that is
// not cached is ignored.
func (r *Repository) ActivateByID(ctx context.Context, id string) error {
	v, ok := r.cached(id)
	if !ok {
		r.log.Debug("activate by id: not cached", zap.String("id", id))
		return nil
	}
	return r.Activate(ctx, v)
}

// ClearCompleted removes completed entries from both stores and the cache.
func (r *Repository) ClearCompleted(ctx context.Context) error {
	err := r.writeThrough(func(s types.DataSource) error { return s.ClearCompleted(ctx) })
	r.mu.Lock()
	r.ensureCacheLocked().removeIf(func(v types.Vocabulary) bool { return v.Completed })
	r.mu.Unlock()
	return err
}

// DeleteAll empties both stores. The cache stays present, so the next List
// answers an empty collection without a fetch.
func (r *Repository) DeleteAll(ctx context.Context) error {
	err := r.writeThrough(func(s types.DataSource) error { return s.DeleteAll(ctx) })
	r.mu.Lock()
	r.ensureCacheLocked().clear()
	r.mu.Unlock()
	return err
}

// Delete removes the entry with the given id from both stores and the cache.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	err := r.writeThrough(func(s types.DataSource) error { return s.Delete(ctx, id) })
	r.mu.Lock()
	r.ensureCacheLocked().remove(id)
	r.mu.Unlock()
	return err
}

// Refresh marks the cache dirty so the next List reads the remote store.
func (r *Repository) Refresh() {
	r.mu.Lock()
	r.dirty = true
	r.mu.Unlock()
	r.log.Debug("cache marked dirty")
}

// Drain blocks until every background fetch has finished.
func (r *Repository) Drain() {
	r.inflight.Wait()
}

// writeThrough applies fn to the remote store and then the local store.
// Both are always attempted.
func (r *Repository) writeThrough(fn func(types.DataSource) error) error {
	remoteErr := fn(r.remote)
	localErr := fn(r.local)
	switch {
	case remoteErr == nil:
		return localErr
	case localErr == nil:
		return remoteErr
	}
	return errors.Join(remoteErr, localErr)
}

// track waits for the fetches in g in the background and releases the
// inflight slot the caller took before starting them. Failures that happen
// after the caller was answered are logged, since nobody else sees them.
func (r *Repository) track(g *errgroup.Group, op string, answered *atomic.Bool) {
	go func() {
		defer r.inflight.Done()
		if err := g.Wait(); err != nil {
			if answered.Load() {
				r.log.Warn("background fetch failed", zap.String("op", op), zap.Error(err))
				return
			}
			r.log.Debug("fetch failed", zap.String("op", op), zap.Error(err))
		}
	}()
}

func (r *Repository) upsert(v types.Vocabulary) {
	r.mu.Lock()
	r.ensureCacheLocked().put(v)
	r.mu.Unlock()
}

func (r *Repository) cached(id string) (types.Vocabulary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache == nil {
		return types.Vocabulary{}, false
	}
	return r.cache.get(id)
}

func (r *Repository) ensureCacheLocked() *cache {
	if r.cache == nil {
		r.cache = newCache()
	}
	return r.cache
}
