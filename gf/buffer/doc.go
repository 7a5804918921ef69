// Package buffer provides the scratch storage used by one filter call: a
// reusable float64 Buffer, a sync.Pool-backed Pool, and an Arena that hands
// out scratch slices against an optional byte budget and releases them all
// when the call ends.
package buffer
