// Package urlstate maps SearchState to and from the canonical location
// query string. The encoded form is the only inter-navigation wire format:
// persisted history entries embed these strings verbatim, so the key set
// must remain stable.
package urlstate

import (
	"net/url"
	"strconv"

	"recommendi/internal/domain"
)

// Query string keys
const (
	keySearchType = "search_type"
	keyQuery      = "query"
	keyCategory   = "category"
	keyPage       = "page"
	keyTagName    = "tag_name"
	keySessionID  = "session_id"
)

// Encode serializes a SearchState to a query string (no leading "?").
// Fields irrelevant to the state's search type are omitted; the empty
// state encodes to the empty string (the root location).
func Encode(s domain.SearchState) string {
	if s.SearchType == domain.SearchNone {
		return ""
	}

	v := url.Values{}
	v.Set(keySearchType, string(s.SearchType))
	v.Set(keyQuery, s.Query)
	v.Set(keyCategory, s.Category)
	v.Set(keyPage, strconv.Itoa(s.Page))
	if s.SearchType == domain.SearchTag && s.TagName != "" {
		v.Set(keyTagName, s.TagName)
	}
	if s.SearchType == domain.SearchMessage && s.SessionID != "" {
		v.Set(keySessionID, s.SessionID)
	}
	return v.Encode()
}

// Decode parses a query string into a SearchState. Decoding is total:
// absent or malformed fields fall back to defaults rather than failing.
func Decode(raw string) domain.SearchState {
	s := domain.SearchState{
		Category: domain.DefaultCategory,
		Page:     1,
	}

	v, err := url.ParseQuery(raw)
	if err != nil {
		return s
	}

	switch v.Get(keySearchType) {
	case string(domain.SearchMessage):
		s.SearchType = domain.SearchMessage
		s.SessionID = v.Get(keySessionID)
	case string(domain.SearchTag):
		s.SearchType = domain.SearchTag
		s.TagName = v.Get(keyTagName)
	default:
		return s
	}

	s.Query = v.Get(keyQuery)
	if c := v.Get(keyCategory); c != "" {
		s.Category = c
	}
	if p, err := strconv.Atoi(v.Get(keyPage)); err == nil && p >= 1 {
		s.Page = p
	}
	return s
}
