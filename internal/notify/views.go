package notify

import (
	"strings"

	"github.com/nhle/admin-panel/internal/model"
)

// Counts computes the tab badge numbers.
func Counts(items []model.Notification) model.NotificationCounts {
	var c model.NotificationCounts
	for _, it := range items {
		if it.Archived {
			c.Archived++
			continue
		}
		c.All++
		if it.Favorite {
			c.Fav++
		}
		if !it.Read {
			c.Unread++
		}
	}
	return c
}

// InTab reports whether n belongs to tab. Unknown tabs behave like TabAll.
func InTab(n model.Notification, tab model.NotificationTab) bool {
	switch tab {
	case model.TabArchived:
		return n.Archived
	case model.TabFavorites:
		return n.Favorite && !n.Archived
	default:
		return !n.Archived
	}
}

// Filter returns the records in tab, preserving order.
func Filter(items []model.Notification, tab model.NotificationTab) []model.Notification {
	out := make([]model.Notification, 0, len(items))
	for _, it := range items {
		if InTab(it, tab) {
			out = append(out, it)
		}
	}
	return out
}

// Matches reports whether query occurs in the title or body of n, ignoring
// case. An empty query matches everything.
func Matches(n model.Notification, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Body), q)
}

// Search returns the records matching query, preserving order.
func Search(items []model.Notification, query string) []model.Notification {
	out := make([]model.Notification, 0, len(items))
	for _, it := range items {
		if Matches(it, query) {
			out = append(out, it)
		}
	}
	return out
}

// View applies the tab filter and then the search.
func View(items []model.Notification, tab model.NotificationTab, query string) []model.Notification {
	return Search(Filter(items, tab), query)
}

// Recent returns the first n non-archived records, as shown in the bell
// popover.
func Recent(items []model.Notification, n int) []model.Notification {
	visible := Filter(items, model.TabAll)
	if n >= 0 && len(visible) > n {
		visible = visible[:n]
	}
	return visible
}
