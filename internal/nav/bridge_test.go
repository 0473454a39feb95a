package nav

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendi/internal/domain"
	"recommendi/internal/fetcher"
	"recommendi/internal/history"
	"recommendi/internal/urlstate"
)

func newTestBridge(t *testing.T) (*Bridge, history.Store) {
	t.Helper()
	store, err := history.OpenInMemory(nil, nil, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewBridge(store, zerolog.Nop()), store
}

func TestValidateSubmit(t *testing.T) {
	msg, ok := ValidateSubmit("  space westerns  ")
	assert.True(t, ok)
	assert.Equal(t, "space westerns", msg)

	_, ok = ValidateSubmit("   ")
	assert.False(t, ok)
}

func TestCompleteSubmit(t *testing.T) {
	bridge, store := newTestBridge(t)

	eff := bridge.CompleteSubmit("sci-fi adventure", "Movie", "sess-1")

	require.True(t, eff.Fetch)
	assert.Equal(t, fetcher.ModeReplace, eff.FetchMode)
	assert.Equal(t, 1, eff.State.Page)
	assert.Equal(t, domain.SearchMessage, eff.State.SearchType)
	assert.Equal(t, "sess-1", eff.State.SessionID)

	// Location matches the state and is what history recorded
	assert.Equal(t, urlstate.Encode(eff.State), bridge.Location())
	entries := store.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "sci-fi adventure", entries[0].FullMessage)
	assert.Equal(t, "sci-fi adventure", entries[0].ClippedMessage)
	assert.Equal(t, bridge.Location(), entries[0].URL)
}

func TestCompleteSubmit_AlwaysPageOne(t *testing.T) {
	bridge, _ := newTestBridge(t)

	// Get deep into a paginated search first
	bridge.CompleteSubmit("first", "Movie", "s1")
	bridge.LoadMore()
	bridge.LoadMore()
	require.Equal(t, 3, bridge.State().Page)

	eff := bridge.CompleteSubmit("second", "Movie", "s2")
	assert.Equal(t, 1, eff.State.Page)
	assert.Equal(t, 1, bridge.State().Page)
}

func TestTagClick(t *testing.T) {
	bridge, store := newTestBridge(t)

	eff := bridge.TagClick(domain.Tag{ID: "t1", Name: "Space Opera", Category: "Movie"}, "Movie")

	require.True(t, eff.Fetch)
	assert.Equal(t, fetcher.ModeReplace, eff.FetchMode)
	assert.Equal(t, domain.SearchTag, eff.State.SearchType)
	assert.Equal(t, "t1", eff.State.Query)
	assert.Equal(t, "Space Opera", eff.State.TagName)
	assert.Equal(t, 1, eff.State.Page)

	// Tag searches never enter the session history
	assert.Empty(t, store.List())
}

func TestTagClick_SwitchesCategory(t *testing.T) {
	bridge, _ := newTestBridge(t)

	eff := bridge.TagClick(domain.Tag{ID: "t2", Name: "Epic", Category: "Books"}, "Movie")
	assert.Equal(t, "Books", eff.State.Category)
	assert.True(t, eff.Rehydrate)
}

func TestLoadMore_IncrementsPageByOne(t *testing.T) {
	bridge, _ := newTestBridge(t)
	bridge.CompleteSubmit("q", "Movie", "s1")

	eff := bridge.LoadMore()
	require.True(t, eff.Fetch)
	assert.Equal(t, fetcher.ModeAppend, eff.FetchMode)
	assert.Equal(t, 2, eff.State.Page)
	assert.Equal(t, 2, bridge.State().Page)
}

func TestLoadMore_NoActiveSearchIsNoOp(t *testing.T) {
	bridge, _ := newTestBridge(t)
	eff := bridge.LoadMore()
	assert.False(t, eff.Fetch)
	assert.Equal(t, "", bridge.Location())
}

func TestHistoryClick_ReplaysStoredLocationVerbatim(t *testing.T) {
	bridge, _ := newTestBridge(t)
	bridge.CompleteSubmit("old favorite", "Books", "s1")
	stored := bridge.State()
	url := bridge.Location()

	bridge.NewSession()
	require.Equal(t, "", bridge.Location())

	eff := bridge.HistoryClick(domain.HistoryEntry{FullMessage: "old favorite", URL: url})
	assert.Equal(t, url, bridge.Location())
	assert.True(t, eff.Fetch)
	assert.True(t, eff.Rehydrate)
	assert.Equal(t, stored, eff.State)
}

func TestClearHistory_ResetsViewAndLocation(t *testing.T) {
	bridge, store := newTestBridge(t)
	bridge.CompleteSubmit("q", "Movie", "s1")

	eff := bridge.ClearHistory()
	assert.True(t, eff.ResetView)
	assert.Equal(t, "", bridge.Location())
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, domain.SearchNone, eff.State.SearchType)
}

func TestNewSession(t *testing.T) {
	bridge, store := newTestBridge(t)
	bridge.CompleteSubmit("kept", "Movie", "s1")

	eff := bridge.NewSession()
	assert.True(t, eff.ResetView)
	assert.False(t, eff.Fetch, "no search is active after a session reset")
	assert.Equal(t, "", bridge.Location())

	// History survives a new session
	assert.Equal(t, 1, store.Len())

	// And the previous search is one back-step away
	back, ok := bridge.Back()
	require.True(t, ok)
	assert.Equal(t, domain.SearchMessage, back.State.SearchType)
}

func TestBack_ResynchronizesFromLocation(t *testing.T) {
	bridge, _ := newTestBridge(t)
	bridge.CompleteSubmit("first", "Movie", "s1")
	bridge.CompleteSubmit("second", "Movie", "s2")

	eff, ok := bridge.Back()
	require.True(t, ok)
	assert.True(t, eff.Fetch)
	assert.Equal(t, fetcher.ModeReplace, eff.FetchMode)
	assert.True(t, eff.Rehydrate)
	assert.Equal(t, "first", eff.State.Query)
}

func TestBack_EmptyHistoryForcesCleanReset(t *testing.T) {
	bridge, store := newTestBridge(t)
	bridge.CompleteSubmit("q", "Movie", "s1")
	require.NoError(t, store.Clear())

	eff, ok := bridge.Back()
	require.True(t, ok)
	assert.True(t, eff.ResetView)
	assert.False(t, eff.Fetch)
	assert.Equal(t, "", bridge.Location(), "popped location must not be trusted")
}

func TestBack_AtRootWithHistoryIsNoOp(t *testing.T) {
	bridge, store := newTestBridge(t)
	// Seed the store so the empty-history branch is not taken
	_, err := store.Add(history.NewEntry("s1", "seed", "search_type=message&query=seed"))
	require.NoError(t, err)

	_, ok := bridge.Back()
	assert.False(t, ok)
}

func TestForward_AfterBack(t *testing.T) {
	bridge, _ := newTestBridge(t)
	bridge.CompleteSubmit("first", "Movie", "s1")
	bridge.CompleteSubmit("second", "Movie", "s2")

	_, ok := bridge.Back()
	require.True(t, ok)

	eff, ok := bridge.Forward()
	require.True(t, ok)
	assert.Equal(t, "second", eff.State.Query)
	assert.True(t, eff.Fetch)
}

func TestResync_NormalizesDeepPageToOne(t *testing.T) {
	bridge, _ := newTestBridge(t)
	bridge.CompleteSubmit("first", "Movie", "s1")
	bridge.LoadMore()
	bridge.CompleteSubmit("second", "Movie", "s2")

	// Walk back to the page-2 location of the first search
	_, ok := bridge.Back()
	require.True(t, ok)

	state := bridge.State()
	assert.Equal(t, "first", state.Query)
	assert.Equal(t, 1, state.Page, "replace-mode resync restarts at page 1")
}

func TestResync_RootLocation(t *testing.T) {
	bridge, _ := newTestBridge(t)

	eff := bridge.Resync()
	assert.False(t, eff.Fetch)
	assert.True(t, eff.ResetView)
	assert.Equal(t, domain.DefaultCategory, eff.State.Category)
}
