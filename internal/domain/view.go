package domain

import "fmt"

// ViewKey is the logical cache identity for one derived, fetchable piece of
// data (the notes list, the dashboard, one note's detail).
type ViewKey string

const (
	ViewNotesList      ViewKey = "notes-list"
	ViewDocumentsList  ViewKey = "documents-list"
	ViewDashboardStats ViewKey = "dashboard-stats"
)

// NoteView returns the per-note detail view key.
func NoteView(id int) ViewKey {
	return ViewKey(fmt.Sprintf("note:%d", id))
}
