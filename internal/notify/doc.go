// Package notify keeps the user's notification list.
//
// The list lives as one JSON array under a well-known key of the shared
// key-value namespace. Every consumer (header popover, notifications page)
// owns a Store holding its own copy. A mutation rewrites the whole array
// and publishes a payload-free signal on the in-process Bus; consumers then
// re-read storage and adopt the stored list only if its serialized form
// differs from their own. Writes from other processes are observed by the
// sync package and trigger the same reconciliation.
//
// Conflicting writes are last-write-wins for the whole array. Storage
// failures never surface: loads fall back to the sample set and failed
// writes are dropped.
package notify
