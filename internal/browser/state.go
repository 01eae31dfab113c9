// Package browser is the interactive result browser for wicli search.
//
// The top panel shows the selected match's content, the bottom panel lists
// the matches; ↑/k and ↓/j move the selection with wrap-around.
package browser

// State is a selection over n results. It starts with nothing selected.
type State struct {
	n        int
	selected int
}

// NewState returns a State over n results with no selection.
func NewState(n int) State {
	return State{n: n, selected: -1}
}

// Len returns the number of results.
func (s *State) Len() int { return s.n }

// Selected returns the selected index, or false if nothing is selected.
func (s *State) Selected() (int, bool) {
	if s.selected < 0 {
		return 0, false
	}
	return s.selected, true
}

// Current returns the index to display: the selection, or 0 without one.
func (s *State) Current() int {
	if s.selected < 0 {
		return 0
	}
	return s.selected
}

// Next selects the following result, wrapping from last to first.
// With no selection it selects the first. With no results it does nothing.
func (s *State) Next() {
	if s.n == 0 {
		return
	}
	if s.selected < 0 || s.selected >= s.n-1 {
		s.selected = 0
		return
	}
	s.selected++
}

// Previous selects the preceding result, wrapping from first to last.
// With no selection it selects the first. With no results it does nothing.
func (s *State) Previous() {
	if s.n == 0 {
		return
	}
	switch {
	case s.selected < 0:
		s.selected = 0
	case s.selected == 0:
		s.selected = s.n - 1
	default:
		s.selected--
	}
}
