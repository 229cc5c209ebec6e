package notify

import (
	"fmt"
	"time"

	"github.com/nhle/admin-panel/internal/model"
)

// DateLayout formats the display date stamped on new notifications.
const DateLayout = "01/02/2006, 15:04:05"

// SampleSize is the number of records in the fallback sample set.
const SampleSize = 12

// SampleNotifications returns the fixed fallback set: n-0..n-11, one hour
// apart going back from now, with favorite, archived and read set on every
// 5th, 7th and 3rd record respectively.
func SampleNotifications(now time.Time) []model.Notification {
	items := make([]model.Notification, SampleSize)
	for i := range items {
		items[i] = model.Notification{
			ID:       fmt.Sprintf("n-%d", i),
			Title:    fmt.Sprintf("Notification %d", i+1),
			Body:     fmt.Sprintf("This is the detail for notification %d.", i+1),
			Date:     now.Add(-time.Duration(i) * time.Hour).Format(DateLayout),
			Favorite: i%5 == 0,
			Archived: i%7 == 0,
			Read:     i%3 == 0,
		}
	}
	return items
}
