package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

var (
	wordA = types.NewVocabularyWithID("a", "serendipity", "a happy accident", false)
	wordB = types.NewVocabularyWithID("b", "petrichor", "smell of rain", false)
	wordC = types.NewFullVocabulary("c", "ephemeral", "short-lived", "adjective", "ih-FEM-er-ul", false)
)

func newRepo(t *testing.T, remote, local types.DataSource) *Repository {
	t.Helper()
	r, err := New(remote, local)
	require.NoError(t, err)
	t.Cleanup(r.Drain)
	return r
}

func assertItems(t *testing.T, want, got []types.Vocabulary) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func mustList(t *testing.T, r *Repository) []types.Vocabulary {
	t.Helper()
	items, err := r.List(context.Background())
	require.NoError(t, err)
	return items
}

func TestNew_NilSource(t *testing.T) {
	_, err := New(nil, newFake())
	assert.ErrorIs(t, err, types.ErrNilDataSource)

	_, err = New(newFake(), nil)
	assert.ErrorIs(t, err, types.ErrNilDataSource)
}

func TestList_FastPathIsIdempotent(t *testing.T) {
	remote, local := newFake(), newFake(wordA, wordB)
	r := newRepo(t, remote, local)

	first := mustList(t, r)
	r.Drain()
	second := mustList(t, r)
	third := mustList(t, r)

	assertItems(t, []types.Vocabulary{wordA, wordB}, first)
	assertItems(t, first, second)
	assertItems(t, first, third)
	assert.EqualValues(t, 1, local.listCalls.Load())
	assert.EqualValues(t, 1, remote.listCalls.Load())
}

func TestList_FastPathReturnsCopy(t *testing.T) {
	r := newRepo(t, newFake(), newFake(wordA))

	items := mustList(t, r)
	r.Drain()
	items = mustList(t, r)
	items[0].Title = "mutated"

	assertItems(t, []types.Vocabulary{wordA}, mustList(t, r))
}

func TestList_NonEmptyLocalWins(t *testing.T) {
	remote := newFake(wordB).gated()
	local := newFake(wordA)
	r := newRepo(t, remote, local)

	// Remote is still blocked, so the answer can only come from local.
	assertItems(t, []types.Vocabulary{wordA}, mustList(t, r))

	remote.release()
	r.Drain()

	// The remote fetch still landed in the local store and the cache.
	assertItems(t, []types.Vocabulary{wordA, wordB}, local.snapshot(t))
	assertItems(t, []types.Vocabulary{wordA, wordB}, mustList(t, r))
}

func TestList_EmptyLocalDefersToRemote(t *testing.T) {
	remote, local := newFake(wordB), newFake()
	r := newRepo(t, remote, local)

	assertItems(t, []types.Vocabulary{wordB}, mustList(t, r))
	r.Drain()
	assertItems(t, []types.Vocabulary{wordB}, local.snapshot(t))
}

func TestList_BothEmpty(t *testing.T) {
	r := newRepo(t, newFake(), newFake())

	items, err := r.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestList_DirtyForcesRemote(t *testing.T) {
	remote, local := newFake(wordB), newFake(wordA)
	r := newRepo(t, remote, local)

	mustList(t, r)
	r.Drain()
	require.EqualValues(t, 1, local.listCalls.Load())

	r.Refresh()
	assertItems(t, []types.Vocabulary{wordB}, mustList(t, r))
	r.Drain()

	assert.EqualValues(t, 1, local.listCalls.Load(), "local not consulted while dirty")
	assert.EqualValues(t, 2, remote.listCalls.Load())

	// The dirty flag is cleared by the successful fetch.
	mustList(t, r)
	assert.EqualValues(t, 2, remote.listCalls.Load())
}

func TestList_DirtyRemoteFailureKeepsDirty(t *testing.T) {
	boom := errors.New("remote unavailable")
	remote, local := newFake(wordB), newFake(wordA)
	r := newRepo(t, remote, local)

	mustList(t, r)
	r.Drain()

	r.Refresh()
	remote.listErr = boom
	_, err := r.List(context.Background())
	assert.ErrorIs(t, err, boom)
	r.Drain()

	remote.listErr = nil
	assertItems(t, []types.Vocabulary{wordB}, mustList(t, r))
}

func TestList_LocalErrorIsTerminal(t *testing.T) {
	boom := errors.New("disk on fire")
	remote, local := newFake(wordB), newFake()
	local.listErr = boom
	r := newRepo(t, remote, local)

	_, err := r.List(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestList_RemoteErrorAfterEmptyLocal(t *testing.T) {
	boom := errors.New("remote unavailable")
	remote, local := newFake(), newFake()
	remote.listErr = boom
	r := newRepo(t, remote, local)

	_, err := r.List(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestList_CancelEndsWaitNotFetch(t *testing.T) {
	remote, local := newFake(wordB).gated(), newFake()
	r := newRepo(t, remote, local)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.List(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	remote.release()
	r.Drain()

	assertItems(t, []types.Vocabulary{wordB}, local.snapshot(t))
	assertItems(t, []types.Vocabulary{wordB}, mustList(t, r))
}

func TestGet_InvalidID(t *testing.T) {
	remote, local := newFake(), newFake()
	r := newRepo(t, remote, local)

	_, err := r.Get(context.Background(), "")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.Zero(t, remote.getCalls.Load())
	assert.Zero(t, local.getCalls.Load())
}

func TestGet_CacheHit(t *testing.T) {
	remote, local := newFake(), newFake(wordA)
	r := newRepo(t, remote, local)
	mustList(t, r)
	r.Drain()

	got, err := r.Get(context.Background(), "a")
	require.NoError(t, err)
	v, ok := got.Get()
	require.True(t, ok)
	assert.Equal(t, wordA, v)
	assert.Zero(t, local.getCalls.Load())
	assert.Zero(t, remote.getCalls.Load())
}

func TestGet_LocalHit(t *testing.T) {
	remote, local := newFake(), newFake(wordA)
	r := newRepo(t, remote, local)

	got, err := r.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, types.Present(wordA), got)

	r.Drain()
	got, err = r.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, got.IsPresent())
	assert.EqualValues(t, 1, local.getCalls.Load(), "second get served from cache")
}

func TestGet_RemoteHitIsSavedLocally(t *testing.T) {
	remote, local := newFake(wordB), newFake()
	r := newRepo(t, remote, local)

	got, err := r.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, types.Present(wordB), got)

	r.Drain()
	assertItems(t, []types.Vocabulary{wordB}, local.snapshot(t))
}

func TestGet_FirstPresentWins(t *testing.T) {
	remote, local := newFake(wordA), newFake(wordA).gated()
	r := newRepo(t, remote, local)

	got, err := r.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, got.IsPresent(), "remote answers while local is blocked")

	local.release()
}

func TestGet_BothAbsent(t *testing.T) {
	r := newRepo(t, newFake(wordA), newFake(wordB))

	got, err := r.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, got.IsPresent())
}

func TestGet_ErrorBeforePresentIsTerminal(t *testing.T) {
	boom := errors.New("local broken")
	remote, local := newFake(wordA).gated(), newFake()
	local.getErr = boom
	r := newRepo(t, remote, local)

	_, err := r.Get(context.Background(), "a")
	assert.ErrorIs(t, err, boom)

	remote.release()
}

func TestWrite_SaveGoesThroughToBothAndCache(t *testing.T) {
	remote, local := newFake(), newFake()
	r := newRepo(t, remote, local)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, wordA))

	assertItems(t, []types.Vocabulary{wordA}, remote.snapshot(t))
	assertItems(t, []types.Vocabulary{wordA}, local.snapshot(t))
	assertItems(t, []types.Vocabulary{wordA}, mustList(t, r))
	assert.Zero(t, local.listCalls.Load(), "cache created by the write serves the list")
}

func TestWrite_InvalidID(t *testing.T) {
	remote, local := newFake(), newFake()
	r := newRepo(t, remote, local)
	ctx := context.Background()
	noID := types.Vocabulary{Title: "x"}

	assert.ErrorIs(t, r.Save(ctx, noID), types.ErrInvalidID)
	assert.ErrorIs(t, r.Complete(ctx, noID), types.ErrInvalidID)
	assert.ErrorIs(t, r.Activate(ctx, noID), types.ErrInvalidID)
	assert.ErrorIs(t, r.Delete(ctx, ""), types.ErrInvalidID)
	assert.Zero(t, remote.writeCalls.Load())
	assert.Zero(t, local.writeCalls.Load())

	// Rejected writes leave no cache behind, so List still fetches.
	items := mustList(t, r)
	assert.Empty(t, items)
	assert.EqualValues(t, 1, local.listCalls.Load())
}

func TestWrite_CompletionToggling(t *testing.T) {
	remote, local := newFake(), newFake()
	r := newRepo(t, remote, local)
	ctx := context.Background()
	require.NoError(t, r.Save(ctx, wordC))

	require.NoError(t, r.Complete(ctx, wordC))
	got, err := r.Get(ctx, "c")
	require.NoError(t, err)
	v, _ := got.Get()
	assert.True(t, v.Completed)
	assert.Equal(t, wordC.Title, v.Title)
	assert.Equal(t, wordC.Description, v.Description)
	// Completing rebuilds from the core fields, so type and pronunciation
	// are dropped from the cached value.
	assert.Empty(t, v.Type)
	assert.Empty(t, v.Pronounce)

	require.NoError(t, r.Activate(ctx, v))
	got, err = r.Get(ctx, "c")
	require.NoError(t, err)
	v, _ = got.Get()
	assert.False(t, v.Completed)

	require.NoError(t, r.CompleteByID(ctx, "c"))
	got, _ = r.Get(ctx, "c")
	v, _ = got.Get()
	assert.True(t, v.Completed)
	assert.True(t, remote.snapshot(t)[0].Completed)
	assert.True(t, local.snapshot(t)[0].Completed)

	require.NoError(t, r.ActivateByID(ctx, "c"))
	got, _ = r.Get(ctx, "c")
	v, _ = got.Get()
	assert.False(t, v.Completed)
	assert.False(t, local.snapshot(t)[0].Completed)
}

func TestWrite_ClearCompleted(t *testing.T) {
	done := wordB.AsCompleted()
	remote, local := newFake(), newFake()
	r := newRepo(t, remote, local)
	ctx := context.Background()
	require.NoError(t, r.Save(ctx, wordA))
	require.NoError(t, r.Save(ctx, done))

	require.NoError(t, r.ClearCompleted(ctx))

	assertItems(t, []types.Vocabulary{wordA}, mustList(t, r))
	assertItems(t, []types.Vocabulary{wordA}, remote.snapshot(t))
	assertItems(t, []types.Vocabulary{wordA}, local.snapshot(t))
}

func TestWrite_DeleteAllResetsToEmpty(t *testing.T) {
	remote, local := newFake(wordA), newFake(wordB)
	r := newRepo(t, remote, local)
	ctx := context.Background()
	mustList(t, r)
	r.Drain()

	require.NoError(t, r.DeleteAll(ctx))

	items := mustList(t, r)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.EqualValues(t, 1, local.listCalls.Load())
	assert.Empty(t, local.snapshot(t))
	assert.Empty(t, remote.snapshot(t))
}

func TestWrite_DeleteBeforeAnyRead(t *testing.T) {
	remote, local := newFake(wordA), newFake(wordA)
	r := newRepo(t, remote, local)

	require.NoError(t, r.Delete(context.Background(), "a"))

	assert.Empty(t, remote.snapshot(t))
	assert.Empty(t, local.snapshot(t))
}

func TestWrite_FailurePropagatesAndCacheStillUpdates(t *testing.T) {
	remoteErr := errors.New("remote write failed")
	localErr := errors.New("local write failed")

	tests := []struct {
		name      string
		remoteErr error
		localErr  error
	}{
		{name: "remote fails", remoteErr: remoteErr},
		{name: "local fails", localErr: localErr},
		{name: "both fail", remoteErr: remoteErr, localErr: localErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, local := newFake(), newFake()
			remote.writeErr, local.writeErr = tt.remoteErr, tt.localErr
			r := newRepo(t, remote, local)

			err := r.Save(context.Background(), wordA)
			require.Error(t, err)
			if tt.remoteErr != nil {
				assert.ErrorIs(t, err, tt.remoteErr)
			}
			if tt.localErr != nil {
				assert.ErrorIs(t, err, tt.localErr)
			}
			assert.EqualValues(t, 1, remote.writeCalls.Load(), "remote always attempted")
			assert.EqualValues(t, 1, local.writeCalls.Load(), "local always attempted")
			assertItems(t, []types.Vocabulary{wordA}, mustList(t, r))
		})
	}
}

func TestDrain_WaitsForFetchFromItsStart(t *testing.T) {
	remote, local := newFake(wordB), newFake(wordA)
	r := newRepo(t, remote, local)

	drained := make(chan struct{})
	remote.onList = func() {
		go func() {
			r.Drain()
			close(drained)
		}()
		select {
		case <-drained:
			t.Error("Drain returned while a fetch was still running")
		case <-time.After(20 * time.Millisecond):
		}
	}

	mustList(t, r)
	r.Drain()
	<-drained
}

func TestRepository_ConcurrentUse(t *testing.T) {
	remote, local := newFake(wordA), newFake(wordB)
	r := newRepo(t, remote, local)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 4 {
			case 0:
				_, _ = r.List(ctx)
			case 1:
				_, _ = r.Get(ctx, "a")
			case 2:
				_ = r.Save(ctx, wordC)
			case 3:
				r.Refresh()
			}
		}(i)
	}
	wg.Wait()
	r.Drain()

	r.Refresh()
	items := mustList(t, r)
	assert.Contains(t, items, wordA)
}
