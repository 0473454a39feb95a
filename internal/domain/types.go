package domain

// SearchType identifies what kind of search produced the current view
type SearchType string

const (
	SearchNone    SearchType = ""        // no search issued yet
	SearchMessage SearchType = "message" // free-text query
	SearchTag     SearchType = "tag"     // tag identifier query
)

// DefaultCategory is used until the category list has loaded
const DefaultCategory = "Movie"

// SearchState is the canonical state of the client, serialized to and from
// the location query string. The location is the single source of truth:
// the view is always reconstructible from it plus the persisted history.
type SearchState struct {
	SearchType SearchType
	Query      string // free text for message searches, tag id for tag searches
	Category   string
	TagName    string // display label, tag searches only
	Page       int    // 1-based
	SessionID  string // backend-issued, message searches only
}

// Category describes an available recommendation category and its form copy
type Category struct {
	Value       string `json:"value"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

// Tag is a clickable tag attached to a recommendation
type Tag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Image holds a recommendation's cover image reference
type Image struct {
	URL string `json:"url"`
}

// Recommendation is a single result item
type Recommendation struct {
	Title           string `json:"title"`
	Author          string `json:"author,omitempty"`
	Genre           string `json:"genre,omitempty"`
	ReleaseDate     string `json:"release_date,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	Description     string `json:"description"`
	Context         string `json:"context"` // why this item was recommended
	Image           Image  `json:"image"`
	Tags            []Tag  `json:"tags,omitempty"`
	ExtraData       string `json:"extra_data_string,omitempty"`
}

// Date returns whichever release or publication date the item carries
func (r Recommendation) Date() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.PublicationDate
}

// SearchContext describes what the current result set represents
type SearchContext struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// FetchResult is one page of results from the backend
type FetchResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	HasNext         bool             `json:"has_next"`
	SearchContext   *SearchContext   `json:"search_context,omitempty"`
	ErrorMessage    string           `json:"error_message,omitempty"`
}

// HistoryEntry is one persisted past search
type HistoryEntry struct {
	ID             int64  `json:"id"` // client-generated timestamp
	SessionID      string `json:"session_id"`
	FullMessage    string `json:"full_message"` // deduplication key
	ClippedMessage string `json:"clipped_message"`
	URL            string `json:"url"` // canonical query string, replayed verbatim
}
