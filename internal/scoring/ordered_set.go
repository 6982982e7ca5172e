package scoring

// orderedSet keeps the first occurrence of each string in insertion order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

// Add appends v unless already present and reports whether it was added.
func (s *orderedSet) Add(v string) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet) Contains(v string) bool {
	_, ok := s.seen[v]
	return ok
}

func (s *orderedSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the set contents.
func (s *orderedSet) Items() []string {
	return append([]string(nil), s.items...)
}
