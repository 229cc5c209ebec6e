package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down  key.Binding
	Up    key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Dashboard pages
	PageNotifications key.Binding
	PageBilling       key.Binding
	PageTickets       key.Binding
	PageSettings      key.Binding
	PageAccount       key.Binding
	Logout            key.Binding

	// Notification bell
	Bell        key.Binding
	MarkRead    key.Binding
	MarkAllRead key.Binding

	// Notifications page
	NextTab        key.Binding
	PrevTab        key.Binding
	ToggleSelect   key.Binding
	SelectAll      key.Binding
	ToggleRead     key.Binding
	ToggleFavorite key.Binding
	ToggleArchive  key.Binding
	BulkRead       key.Binding
	Delete         key.Binding
	BulkDelete     key.Binding

	// Billing and tickets
	New      key.Binding
	Pay      key.Binding
	Export   key.Binding
	PageSize key.Binding
	Status   key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous page"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next page"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "sync now"),
		),
		PageNotifications: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "notifications"),
		),
		PageBilling: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "billing"),
		),
		PageTickets: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "get help"),
		),
		PageSettings: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "settings"),
		),
		PageAccount: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "account"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "log out"),
		),
		Bell: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "notifications popover"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "mark all read"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		ToggleSelect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		ToggleRead: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle read"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle favorite"),
		),
		ToggleArchive: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "toggle archive"),
		),
		BulkRead: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "mark selected read"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		BulkDelete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete selected"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Pay: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pay invoice"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "rows per page"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "advance status"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Bell,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back, k.Quit},
		{k.PageNotifications, k.PageBilling, k.PageTickets, k.PageSettings, k.PageAccount, k.Logout},
		{k.Search, k.Command, k.Help, k.Refresh, k.Bell, k.MarkRead, k.MarkAllRead},
		{k.NextTab, k.ToggleSelect, k.SelectAll, k.ToggleRead, k.ToggleFavorite, k.ToggleArchive},
		{k.BulkRead, k.Delete, k.BulkDelete, k.New, k.Pay, k.Export, k.PageSize, k.Status},
	}
}
