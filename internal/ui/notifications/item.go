package notifications

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/theme"
)

// Item wraps a notification so it can be used in a bubbles/list.
type Item struct {
	Notification model.Notification
}

// FilterValue returns the string used for filtering.
func (i Item) FilterValue() string { return i.Notification.Title }

// Title returns the notification title.
func (i Item) Title() string { return i.Notification.Title }

// Description returns the notification body.
func (i Item) Description() string { return i.Notification.Body }

// ItemDelegate renders one notification per line.
type ItemDelegate struct {
	// selection is shared by reference with the page Model so checkboxes
	// follow bulk selection without rebuilding the delegate.
	selection *notify.Selection
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a notification: checkbox, unread dot, star, title and date
// on the first line and the body below.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	n := it.Notification
	isSelected := index == m.Index()

	check := "[ ]"
	if d.selection != nil && d.selection.Has(n.ID) {
		check = theme.CheckedStyle.Render("[x]")
	}

	dot := " "
	if !n.Read {
		dot = theme.UnreadMarkerStyle.Render("●")
	}

	star := " "
	if n.Favorite {
		star = theme.FavoriteStyle.Render("★")
	}

	archived := ""
	if n.Archived {
		archived = theme.ArchivedStyle.Render(" [archived]")
	}

	title := n.Title
	body := n.Body
	if n.Read {
		title = theme.DimmedStyle.Render(title)
	}
	body = theme.DimmedStyle.Render("      " + body)

	date := theme.DimmedStyle.Render(n.Date)

	line := fmt.Sprintf("%s %s %s %s%s  %s", check, dot, star, title, archived, date)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line+"\n"+theme.ListItemStyle.Render(body))
}
