package model

// Notification is a single user-facing alert with independent
// read/favorite/archived flags. ID and Date are set once at creation.
type Notification struct {
	// ID is the opaque unique identifier for this notification.
	ID string `json:"id"`

	// Title is the short display string.
	Title string `json:"title"`

	// Body is the optional longer text.
	Body string `json:"body,omitempty"`

	// Date is the display-formatted creation timestamp.
	Date string `json:"date"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// Favorite marks the notification as starred.
	Favorite bool `json:"favorite"`

	// Archived hides the notification from the default views.
	Archived bool `json:"archived"`
}

// NotificationTab selects which subset of notifications a view shows.
type NotificationTab string

const (
	TabAll       NotificationTab = "all"
	TabFavorites NotificationTab = "favorites"
	TabArchived  NotificationTab = "archived"
)

// NotificationTabs lists the tabs in display order.
var NotificationTabs = []NotificationTab{TabAll, TabFavorites, TabArchived}

// NotificationCounts holds the badge numbers shown next to each tab.
type NotificationCounts struct {
	All      int `json:"all"`
	Fav      int `json:"fav"`
	Archived int `json:"archived"`
	Unread   int `json:"unread"`
}
