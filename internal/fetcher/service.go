// Package fetcher is the single-flight request pipeline for recommendation
// pages. At most one fetch is in flight at any time; concurrent triggers
// are dropped, not queued. Each request carries the canonical encoding of
// the state it was issued for, so responses arriving after the location
// changed can be discarded instead of overwriting the current view.
package fetcher

import (
	"context"

	"github.com/rs/zerolog"

	"recommendi/internal/domain"
	"recommendi/internal/urlstate"
)

// Mode decides whether results replace or extend the current view
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

// User-facing fallback copy
const (
	GenericErrorMessage  = "Oops! Something went wrong."
	EmptyResultsFallback = "We couldn't find any recommendations. Please try a different search."
)

// Backend performs the recommendation round trip
type Backend interface {
	Recommendations(ctx context.Context, rawQuery string) (domain.FetchResult, error)
}

// Request is one admitted fetch
type Request struct {
	State domain.SearchState
	Mode  Mode
	Key   string // canonical encoding of State at issue time
}

// Outcome is the terminal result of one fetch. There is no automatic retry.
type Outcome struct {
	Request Request
	Result  domain.FetchResult
	Message string // informational copy for an empty replace result
	Err     error
}

// Service owns the in-flight guard and the backend handle
type Service struct {
	backend  Backend
	inFlight bool
	log      zerolog.Logger
}

// NewService creates a fetch service
func NewService(backend Backend, log zerolog.Logger) *Service {
	return &Service{backend: backend, log: log}
}

// Begin admits a fetch for the given state. It reports false, and admits
// nothing, when a fetch is already in flight or when there is no active
// search. Callers that get false simply drop the trigger.
func (s *Service) Begin(state domain.SearchState, mode Mode) (Request, bool) {
	if s.inFlight {
		s.log.Debug().Msg("fetch already in flight, dropping trigger")
		return Request{}, false
	}
	if state.SearchType == domain.SearchNone {
		return Request{}, false
	}

	s.inFlight = true
	return Request{
		State: state,
		Mode:  mode,
		Key:   urlstate.Encode(state),
	}, true
}

// InFlight reports whether a fetch is currently running
func (s *Service) InFlight() bool {
	return s.inFlight
}

// Finish releases the single-flight guard. It must be called for every
// admitted request, success or failure, so a later user action can always
// trigger a new fetch.
func (s *Service) Finish(Request) {
	s.inFlight = false
}

// Do performs the round trip for an admitted request. Safe to run off the
// update loop; the returned Outcome is handed back as a message.
func (s *Service) Do(ctx context.Context, req Request) Outcome {
	result, err := s.backend.Recommendations(ctx, req.Key)
	if err != nil {
		s.log.Error().Err(err).Str("key", req.Key).Msg("recommendation fetch failed")
		return Outcome{Request: req, Err: err}
	}

	out := Outcome{Request: req, Result: result}
	if len(result.Recommendations) == 0 && req.Mode == ModeReplace {
		out.Message = result.ErrorMessage
		if out.Message == "" {
			out.Message = EmptyResultsFallback
		}
	}
	return out
}

// Stale reports whether an outcome belongs to a location the user has
// already navigated away from. Stale outcomes are dropped unrendered.
func Stale(out Outcome, currentKey string) bool {
	return out.Request.Key != currentKey
}
