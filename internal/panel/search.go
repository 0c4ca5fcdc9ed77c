package panel

import "github.com/studiowebux/restadmin/internal/filter"

// applySearch hides every rendered row whose text does not contain term
func (s State) applySearch(term string) State {
	s.Search = term
	rows := s.Rows()
	hidden := make([]bool, len(rows))
	for i, row := range rows {
		hidden[i] = !filter.ContainsFold(row.Text(), term)
	}
	s.hidden = hidden
	return s
}

// Hidden reports whether the i-th rendered row is hidden by the search
func (s State) Hidden(i int) bool {
	return i < len(s.hidden) && s.hidden[i]
}
