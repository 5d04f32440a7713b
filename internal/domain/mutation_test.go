package domain

import "testing"

func hasKey(keys []ViewKey, want ViewKey) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

func TestEffectsTable(t *testing.T) {
	cases := []struct {
		name   string
		kind   MutationKind
		target TargetKind
		want   []ViewKey
	}{
		{"note create", MutationCreate, TargetNote, []ViewKey{ViewNotesList, ViewDashboardStats}},
		{"note update", MutationUpdate, TargetNote, []ViewKey{ViewNotesList}},
		{"note delete", MutationDelete, TargetNote, []ViewKey{ViewNotesList, ViewDashboardStats}},
		{"note pin", MutationTogglePin, TargetNote, []ViewKey{ViewNotesList}},
		{"document upload", MutationCreate, TargetDocument, []ViewKey{ViewDocumentsList, ViewDashboardStats}},
		{"document delete", MutationDelete, TargetDocument, []ViewKey{ViewDocumentsList, ViewDashboardStats}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMutation(tc.kind, tc.target)
			if len(m.Invalidates) != len(tc.want) {
				t.Fatalf("expected %d keys, got %v", len(tc.want), m.Invalidates)
			}
			for _, k := range tc.want {
				if !hasKey(m.Invalidates, k) {
					t.Errorf("missing key %q in %v", k, m.Invalidates)
				}
			}
		})
	}
}

func TestPinDoesNotTouchDashboard(t *testing.T) {
	m := NewMutation(MutationTogglePin, TargetNote)
	if hasKey(m.Invalidates, ViewDashboardStats) {
		t.Error("pin toggle must not invalidate the dashboard")
	}
}

func TestExtraKeysAppended(t *testing.T) {
	m := NewMutation(MutationUpdate, TargetNote, NoteView(7))
	if !hasKey(m.Invalidates, ViewKey("note:7")) {
		t.Errorf("expected note:7 in %v", m.Invalidates)
	}
	if !hasKey(m.Invalidates, ViewNotesList) {
		t.Errorf("expected notes-list in %v", m.Invalidates)
	}
}
