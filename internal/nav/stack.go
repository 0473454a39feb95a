package nav

// Stack is the client's address bar: an ordered log of canonical location
// strings with a cursor, supporting push/replace plus back/forward
// traversal with the usual browser contract (pushing after going back
// drops the forward tail).
type Stack struct {
	locations []string
	cursor    int
}

// NewStack creates a stack positioned at the root location
func NewStack() *Stack {
	return &Stack{locations: []string{""}}
}

// Current returns the location under the cursor
func (s *Stack) Current() string {
	return s.locations[s.cursor]
}

// Push appends a new location, truncating any forward tail
func (s *Stack) Push(location string) {
	s.locations = append(s.locations[:s.cursor+1], location)
	s.cursor = len(s.locations) - 1
}

// Replace swaps the current location without growing the log
func (s *Stack) Replace(location string) {
	s.locations[s.cursor] = location
}

// Back moves the cursor one step back. Reports false at the oldest entry.
func (s *Stack) Back() (string, bool) {
	if s.cursor == 0 {
		return s.Current(), false
	}
	s.cursor--
	return s.Current(), true
}

// Forward moves the cursor one step forward. Reports false at the newest entry.
func (s *Stack) Forward() (string, bool) {
	if s.cursor >= len(s.locations)-1 {
		return s.Current(), false
	}
	s.cursor++
	return s.Current(), true
}

// CanBack reports whether a back step is possible
func (s *Stack) CanBack() bool {
	return s.cursor > 0
}

// CanForward reports whether a forward step is possible
func (s *Stack) CanForward() bool {
	return s.cursor < len(s.locations)-1
}
