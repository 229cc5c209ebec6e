package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/theme"
)

// SidebarWidth is the width of the dashboard navigation column.
const SidebarWidth = 20

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NavItem is one entry of the dashboard sidebar.
type NavItem struct {
	Key   string
	Label string
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// PageWidth returns the width left for a dashboard page next to the
// sidebar.
func (l Layout) PageWidth() int {
	w := l.Width - SidebarWidth - 1
	if w < 20 {
		w = 20
	}
	return w
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with a title and sync status.
func (l Layout) RenderHeader(title string, syncStatus string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(syncStatus)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// BellBadge renders the bell shown in the header with the unread count.
// The counter is hidden when there is nothing unread.
func BellBadge(unread int) string {
	if unread <= 0 {
		return "🔔"
	}
	label := fmt.Sprintf("%d", unread)
	if unread > 99 {
		label = "99+"
	}
	return "🔔 " + theme.BadgeStyle.Render(label)
}

// RenderSidebar renders the dashboard navigation with the active entry
// highlighted.
func (l Layout) RenderSidebar(items []NavItem, active int) string {
	var b strings.Builder
	for i, item := range items {
		label := fmt.Sprintf("%s %s", item.Key, item.Label)
		if i == active {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		b.WriteString("\n")
	}
	return theme.SidebarStyle.
		Width(SidebarWidth).
		Height(l.ContentHeight()).
		Render(b.String())
}

// RenderWithSidebar places the sidebar left of the page content.
func (l Layout) RenderWithSidebar(sidebar, content string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
