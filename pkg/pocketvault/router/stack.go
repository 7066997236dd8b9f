package router

// StackEntry is one step of navigation history: the route, the input it was
// called with, and the resume state it returned.
type StackEntry struct {
	Route  Route
	Input  any
	Resume any
}

// Stack holds navigation history so a transition can return to an earlier
// screen with its original input and resume state.
type Stack struct {
	entries []StackEntry
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]StackEntry, 0),
	}
}

// Push records route before navigating forward from it.
func (s *Stack) Push(route Route, input any, resume any) {
	s.entries = append(s.entries, StackEntry{
		Route:  route,
		Input:  input,
		Resume: resume,
	})
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack, as when a flow resets to its
// root screen after sign-out.
func (s *Stack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

// Routes returns the routes on the stack, bottom first.
func (s *Stack) Routes() []Route {
	routes := make([]Route, len(s.entries))
	for i, e := range s.entries {
		routes[i] = e.Route
	}
	return routes
}
