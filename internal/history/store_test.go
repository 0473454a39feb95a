package history

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendi/internal/domain"
)

// recordingSyncer captures background sync calls
type recordingSyncer struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	err     error
	done    chan struct{}
}

func newRecordingSyncer() *recordingSyncer {
	return &recordingSyncer{done: make(chan struct{}, 32)}
}

func (r *recordingSyncer) UpdateSession(ctx context.Context, entry domain.HistoryEntry) error {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func (r *recordingSyncer) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("background sync never fired")
	}
}

func openTestStore(t *testing.T, syncer Syncer) *SQLiteStore {
	t.Helper()
	store, err := OpenInMemory(nil, syncer, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func entry(msg string) domain.HistoryEntry {
	return NewEntry("sess-"+msg, msg, "search_type=message&query="+msg)
}

func TestAdd_List_MostRecentFirst(t *testing.T) {
	store := openTestStore(t, nil)

	for _, msg := range []string{"first", "second", "third"} {
		added, err := store.Add(entry(msg))
		require.NoError(t, err)
		assert.True(t, added)
	}

	got := store.List()
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].FullMessage)
	assert.Equal(t, "first", got[2].FullMessage)
}

func TestAdd_DeduplicatesByFullMessage(t *testing.T) {
	store := openTestStore(t, nil)

	added, err := store.Add(entry("space westerns"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Add(entry("space westerns"))
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, 1, store.Len())
}

func TestAdd_CapEvictsOldest(t *testing.T) {
	store := openTestStore(t, nil)

	for i := 1; i <= MaxEntries+1; i++ {
		_, err := store.Add(entry(fmt.Sprintf("query %02d", i)))
		require.NoError(t, err)
	}

	got := store.List()
	require.Len(t, got, MaxEntries)
	assert.Equal(t, "query 21", got[0].FullMessage)
	// "query 01" was evicted; the oldest survivor is "query 02"
	assert.Equal(t, "query 02", got[MaxEntries-1].FullMessage)
}

func TestAdd_FiresBackgroundSync(t *testing.T) {
	syncer := newRecordingSyncer()
	store := openTestStore(t, syncer)

	_, err := store.Add(entry("noir thrillers"))
	require.NoError(t, err)
	syncer.wait(t)

	syncer.mu.Lock()
	defer syncer.mu.Unlock()
	require.Len(t, syncer.entries, 1)
	assert.Equal(t, "noir thrillers", syncer.entries[0].FullMessage)
}

func TestAdd_SyncFailureDoesNotAffectLocalState(t *testing.T) {
	syncer := newRecordingSyncer()
	syncer.err = fmt.Errorf("backend down")
	store := openTestStore(t, syncer)

	added, err := store.Add(entry("still stored"))
	require.NoError(t, err)
	assert.True(t, added)
	syncer.wait(t)

	assert.Equal(t, 1, store.Len())
}

func TestAdd_DuplicateDoesNotSync(t *testing.T) {
	syncer := newRecordingSyncer()
	store := openTestStore(t, syncer)

	_, err := store.Add(entry("dup"))
	require.NoError(t, err)
	syncer.wait(t)

	_, err = store.Add(entry("dup"))
	require.NoError(t, err)

	select {
	case <-syncer.done:
		t.Fatal("duplicate add should not trigger a sync")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t, nil)

	_, err := store.Add(entry("one"))
	require.NoError(t, err)
	require.NoError(t, store.Clear())
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.List())

	// Clearing an already-empty store is harmless
	require.NoError(t, store.Clear())
}

func TestList_DegradesToEmptyOnReadFailure(t *testing.T) {
	store := openTestStore(t, nil)
	require.NoError(t, store.db.Close())

	assert.Empty(t, store.List())
	assert.Equal(t, 0, store.Len())
}

func TestClip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sci-fi adventure", "sci-fi adventure"},
		{strings.Repeat("a", 25), strings.Repeat("a", 25)},
		{strings.Repeat("a", 40), strings.Repeat("a", 25) + "..."},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Clip(tc.in))
	}
}

func TestNewEntry_ClipsAndStamps(t *testing.T) {
	long := "a forty character message padded out!!!!"
	require.Greater(t, len(long), 25)

	e := NewEntry("sess-9", long, "search_type=message&query=x")
	assert.Equal(t, long, e.FullMessage)
	assert.Equal(t, long[:25]+"...", e.ClippedMessage)
	assert.Equal(t, "sess-9", e.SessionID)
	assert.NotZero(t, e.ID)
}
