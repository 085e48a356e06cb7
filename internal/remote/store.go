// Package remote implements the remote vocabulary service: an in-memory,
// ordered store that answers reads after a fixed latency.
package remote

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

// DefaultLatency is how long List and a successful Get take to answer.
const DefaultLatency = 5 * time.Second

// seedNamespace scopes the deterministic ids of seeded entries.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("wordbook/remote-seed"))

// SeedID returns the deterministic id used for a seeded entry with the given title.
func SeedID(title string) string {
	return uuid.NewSHA1(seedNamespace, []byte(title)).String()
}

// DefaultSeed returns the entries the service starts with.
func DefaultSeed() []types.Vocabulary {
	return []types.Vocabulary{
		types.NewVocabularyWithID(SeedID("Build tower in Pisa"),
			"Build tower in Pisa", "Ground looks good, no foundation work required.", false),
		types.NewVocabularyWithID(SeedID("Finish bridge in Tacoma"),
			"Finish bridge in Tacoma", "Found awesome girders at half the cost!", false),
	}
}

// Store is the remote DataSource. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	order   []string
	items   map[string]types.Vocabulary
	latency time.Duration
}

var _ types.DataSource = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLatency sets the read latency. Zero or negative answers immediately.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithSeed replaces the default seed entries.
func WithSeed(items ...types.Vocabulary) Option {
	return func(s *Store) {
		s.reset()
		for _, v := range items {
			s.putLocked(v)
		}
	}
}

// WithoutSeed starts the store empty.
func WithoutSeed() Option {
	return func(s *Store) { s.reset() }
}

// NewStore creates a remote store seeded with DefaultSeed.
func NewStore(opts ...Option) *Store {
	s := &Store{latency: DefaultLatency}
	s.reset()
	for _, v := range DefaultSeed() {
		s.putLocked(v)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a snapshot of every entry once the latency has elapsed.
func (s *Store) List(ctx context.Context) ([]types.Vocabulary, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Vocabulary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

// Get returns the entry with the given id. A known id answers after the
// latency; an unknown id answers Absent immediately.
func (s *Store) Get(ctx context.Context, id string) (types.Optional[types.Vocabulary], error) {
	if id == "" {
		return types.Absent[types.Vocabulary](), types.ErrInvalidID
	}

	s.mu.Lock()
	_, ok := s.items[id]
	s.mu.Unlock()
	if !ok {
		return types.Absent[types.Vocabulary](), nil
	}

	if err := s.wait(ctx); err != nil {
		return types.Absent[types.Vocabulary](), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		return types.Absent[types.Vocabulary](), nil
	}
	return types.Present(v), nil
}

// Save inserts or replaces v.
func (s *Store) Save(_ context.Context, v types.Vocabulary) error {
	if v.ID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(v)
	return nil
}

// Complete stores v rebuilt as completed.
func (s *Store) Complete(ctx context.Context, v types.Vocabulary) error {
	return s.Save(ctx, v.AsCompleted())
}

// CompleteByID marks the entry with the given id completed, if present.
func (s *Store) CompleteByID(_ context.Context, id string) error {
	return s.update(id, types.Vocabulary.AsCompleted)
}

// Activate stores v rebuilt as active.
func (s *Store) Activate(ctx context.Context, v types.Vocabulary) error {
	return s.Save(ctx, v.AsActive())
}

// ActivateByID marks the entry with the given id active, if present.
func (s *Store) ActivateByID(_ context.Context, id string) error {
	return s.update(id, types.Vocabulary.AsActive)
}

// ClearCompleted removes every completed entry.
func (s *Store) ClearCompleted(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.order[:0]
	for _, id := range s.order {
		if s.items[id].Completed {
			delete(s.items, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return nil
}

// DeleteAll removes every entry.
func (s *Store) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

// Delete removes the entry with the given id.
func (s *Store) Delete(_ context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Refresh is a no-op.
func (s *Store) Refresh() {}

func (s *Store) update(id string, fn func(types.Vocabulary) types.Vocabulary) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.items[id]; ok {
		s.items[id] = fn(v)
	}
	return nil
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Store) reset() {
	s.order = nil
	s.items = make(map[string]types.Vocabulary)
}

func (s *Store) putLocked(v types.Vocabulary) {
	if _, ok := s.items[v.ID]; !ok {
		s.order = append(s.order, v.ID)
	}
	s.items[v.ID] = v
}
