package fetcher

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendi/internal/domain"
	"recommendi/internal/urlstate"
)

// fakeBackend counts calls and returns a canned result
type fakeBackend struct {
	calls   int
	lastRaw string
	result  domain.FetchResult
	err     error
}

func (f *fakeBackend) Recommendations(ctx context.Context, rawQuery string) (domain.FetchResult, error) {
	f.calls++
	f.lastRaw = rawQuery
	return f.result, f.err
}

func messageState(query string, page int) domain.SearchState {
	return domain.SearchState{
		SearchType: domain.SearchMessage,
		Query:      query,
		Category:   "Movie",
		Page:       page,
		SessionID:  "sess-1",
	}
}

func TestBegin_SingleFlight(t *testing.T) {
	svc := NewService(&fakeBackend{}, zerolog.Nop())
	state := messageState("q", 1)

	req, ok := svc.Begin(state, ModeReplace)
	require.True(t, ok)
	assert.Equal(t, urlstate.Encode(state), req.Key)

	// Second trigger while in flight is dropped, not queued
	_, ok = svc.Begin(state, ModeReplace)
	assert.False(t, ok)

	svc.Finish(req)
	_, ok = svc.Begin(state, ModeReplace)
	assert.True(t, ok)
}

func TestBegin_NoSearchIsNoOp(t *testing.T) {
	svc := NewService(&fakeBackend{}, zerolog.Nop())

	_, ok := svc.Begin(domain.SearchState{}, ModeReplace)
	assert.False(t, ok)
	assert.False(t, svc.InFlight(), "a rejected trigger must not take the guard")
}

func TestDo_ExactlyOneNetworkCallPerAdmittedRequest(t *testing.T) {
	backend := &fakeBackend{result: domain.FetchResult{
		Recommendations: []domain.Recommendation{{Title: "Dune"}},
		HasNext:         true,
	}}
	svc := NewService(backend, zerolog.Nop())
	state := messageState("desert epics", 1)

	req, ok := svc.Begin(state, ModeReplace)
	require.True(t, ok)
	// Two more triggers arrive while in flight
	_, ok2 := svc.Begin(state, ModeReplace)
	_, ok3 := svc.Begin(state, ModeAppend)
	assert.False(t, ok2)
	assert.False(t, ok3)

	out := svc.Do(context.Background(), req)
	svc.Finish(req)

	assert.Equal(t, 1, backend.calls)
	require.NoError(t, out.Err)
	assert.True(t, out.Result.HasNext)
	assert.Equal(t, req.Key, backend.lastRaw)
}

func TestDo_NetworkFailureIsTerminal(t *testing.T) {
	backend := &fakeBackend{err: fmt.Errorf("connection refused")}
	svc := NewService(backend, zerolog.Nop())

	req, ok := svc.Begin(messageState("q", 1), ModeReplace)
	require.True(t, ok)

	out := svc.Do(context.Background(), req)
	assert.Error(t, out.Err)
	assert.Equal(t, 1, backend.calls, "no automatic retry")

	// Guard is still released so the next action can fetch
	svc.Finish(req)
	assert.False(t, svc.InFlight())
}

func TestDo_EmptyReplaceUsesBackendMessage(t *testing.T) {
	backend := &fakeBackend{result: domain.FetchResult{ErrorMessage: "Nothing in this category yet."}}
	svc := NewService(backend, zerolog.Nop())

	req, _ := svc.Begin(messageState("q", 1), ModeReplace)
	out := svc.Do(context.Background(), req)
	assert.Equal(t, "Nothing in this category yet.", out.Message)
}

func TestDo_EmptyReplaceFallsBackToGenericCopy(t *testing.T) {
	backend := &fakeBackend{result: domain.FetchResult{}}
	svc := NewService(backend, zerolog.Nop())

	req, _ := svc.Begin(messageState("q", 1), ModeReplace)
	out := svc.Do(context.Background(), req)
	assert.Equal(t, EmptyResultsFallback, out.Message)
}

func TestDo_EmptyAppendHasNoMessage(t *testing.T) {
	backend := &fakeBackend{result: domain.FetchResult{}}
	svc := NewService(backend, zerolog.Nop())

	req, _ := svc.Begin(messageState("q", 2), ModeAppend)
	out := svc.Do(context.Background(), req)
	assert.Empty(t, out.Message)
}

func TestStale(t *testing.T) {
	svc := NewService(&fakeBackend{}, zerolog.Nop())
	issued := messageState("old search", 1)

	req, _ := svc.Begin(issued, ModeReplace)
	out := svc.Do(context.Background(), req)

	current := urlstate.Encode(messageState("new search", 1))
	assert.True(t, Stale(out, current))
	assert.False(t, Stale(out, urlstate.Encode(issued)))
}

func TestPaginator(t *testing.T) {
	var p Paginator
	assert.False(t, p.Visible())
	assert.False(t, p.TryActivate(), "no affordance, no activation")

	p.SetHasNext(true)
	assert.True(t, p.Visible())

	require.True(t, p.TryActivate())
	assert.True(t, p.Busy())
	assert.False(t, p.TryActivate(), "second activation while busy is rejected")

	// Fetch completed, no further pages
	p.SetHasNext(false)
	assert.False(t, p.Visible())
	assert.False(t, p.Busy())
}

func TestPaginator_Hide(t *testing.T) {
	var p Paginator
	p.SetHasNext(true)
	require.True(t, p.TryActivate())

	p.Hide()
	assert.False(t, p.Visible())
	assert.False(t, p.Busy())
}
