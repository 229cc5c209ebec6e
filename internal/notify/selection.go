package notify

import "github.com/nhle/admin-panel/internal/model"

// Selection tracks the ids checked on the notifications page for bulk
// actions. The zero value is an empty selection.
type Selection struct {
	ids   map[string]bool
	order []string
}

// Toggle adds id when absent and removes it when present.
func (s *Selection) Toggle(id string) {
	if s.ids == nil {
		s.ids = make(map[string]bool)
	}
	if s.ids[id] {
		delete(s.ids, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.ids[id] = true
	s.order = append(s.order, id)
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ToggleAll selects every visible record, or clears the selection when all
// of them are already selected.
func (s *Selection) ToggleAll(visible []model.Notification) {
	all := len(visible) > 0
	for _, it := range visible {
		if !s.Has(it.ID) {
			all = false
			break
		}
	}
	s.Clear()
	if all {
		return
	}
	for _, it := range visible {
		s.Toggle(it.ID)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
	s.order = nil
}

// Prune drops ids that no longer appear in items.
func (s *Selection) Prune(items []model.Notification) {
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it.ID] = true
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if present[id] {
			kept = append(kept, id)
		} else {
			delete(s.ids, id)
		}
	}
	s.order = kept
}
