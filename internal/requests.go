package internal

// -- Request data -----------------------------------------------------------------------------------------------------

// Search describes a search request by name
type Search struct {
	// The string to search for
	Text string `schema:"text"`
	// The search term as it should be shown to the user again. Falls back to Text if empty
	Term string `schema:"search_term"`
}

// DisplayTerm returns the term to echo back with the search result
func (s *Search) DisplayTerm() string {
	if s.Term != "" {
		return s.Term
	}
	return s.Text
}
