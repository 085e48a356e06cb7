package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mesh-intelligence/wordbook/internal/remote"
	"github.com/mesh-intelligence/wordbook/pkg/types"
)

// fakeSource is an in-memory DataSource with call counters, optional gates
// that hold reads until released, and injectable errors.
type fakeSource struct {
	store *remote.Store

	listCalls  atomic.Int32
	getCalls   atomic.Int32
	writeCalls atomic.Int32

	listGate chan struct{}
	getGate  chan struct{}
	released sync.Once

	// onList runs at the start of every List call.
	onList func()

	listErr  error
	getErr   error
	writeErr error
}

var _ types.DataSource = (*fakeSource)(nil)

func newFake(items ...types.Vocabulary) *fakeSource {
	return &fakeSource{store: remote.NewStore(remote.WithLatency(0), remote.WithSeed(items...))}
}

// gated makes List and Get block until release is called.
func (f *fakeSource) gated() *fakeSource {
	f.listGate = make(chan struct{})
	f.getGate = make(chan struct{})
	return f
}

// release opens the gates. Safe to call more than once.
func (f *fakeSource) release() {
	f.released.Do(func() {
		if f.listGate != nil {
			close(f.listGate)
		}
		if f.getGate != nil {
			close(f.getGate)
		}
	})
}

// snapshot lists the underlying store without counting a call.
func (f *fakeSource) snapshot(t *testing.T) []types.Vocabulary {
	t.Helper()
	items, err := f.store.List(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return items
}

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeSource) List(ctx context.Context) ([]types.Vocabulary, error) {
	f.listCalls.Add(1)
	if f.onList != nil {
		f.onList()
	}
	if err := wait(ctx, f.listGate); err != nil {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.store.List(ctx)
}

func (f *fakeSource) Get(ctx context.Context, id string) (types.Optional[types.Vocabulary], error) {
	f.getCalls.Add(1)
	if err := wait(ctx, f.getGate); err != nil {
		return types.Absent[types.Vocabulary](), err
	}
	if f.getErr != nil {
		return types.Absent[types.Vocabulary](), f.getErr
	}
	return f.store.Get(ctx, id)
}

func (f *fakeSource) write(fn func() error) error {
	f.writeCalls.Add(1)
	if f.writeErr != nil {
		return f.writeErr
	}
	return fn()
}

func (f *fakeSource) Save(ctx context.Context, v types.Vocabulary) error {
	return f.write(func() error { return f.store.Save(ctx, v) })
}

func (f *fakeSource) Complete(ctx context.Context, v types.Vocabulary) error {
	return f.write(func() error { return f.store.Complete(ctx, v) })
}

func (f *fakeSource) CompleteByID(ctx context.Context, id string) error {
	return f.write(func() error { return f.store.CompleteByID(ctx, id) })
}

func (f *fakeSource) Activate(ctx context.Context, v types.Vocabulary) error {
	return f.write(func() error { return f.store.Activate(ctx, v) })
}

func (f *fakeSource) ActivateByID(ctx context.Context, id string) error {
	return f.write(func() error { return f.store.ActivateByID(ctx, id) })
}

func (f *fakeSource) ClearCompleted(ctx context.Context) error {
	return f.write(func() error { return f.store.ClearCompleted(ctx) })
}

func (f *fakeSource) DeleteAll(ctx context.Context) error {
	return f.write(func() error { return f.store.DeleteAll(ctx) })
}

func (f *fakeSource) Delete(ctx context.Context, id string) error {
	return f.write(func() error { return f.store.Delete(ctx, id) })
}

func (f *fakeSource) Refresh() {}
