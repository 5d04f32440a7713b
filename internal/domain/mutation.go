package domain

// MutationKind classifies a write operation for cache-effect purposes.
type MutationKind string

const (
	MutationCreate    MutationKind = "create"
	MutationUpdate    MutationKind = "update"
	MutationDelete    MutationKind = "delete"
	MutationTogglePin MutationKind = "toggle_pin"
)

// TargetKind names what the mutation touches.
type TargetKind string

const (
	TargetNote     TargetKind = "note"
	TargetDocument TargetKind = "document"
)

// Mutation describes one write and the set of views it makes stale.
// Ephemeral: it exists only for the duration of the write.
type Mutation struct {
	Kind        MutationKind
	Target      TargetKind
	Invalidates []ViewKey
}

// NewMutation builds a mutation with its effect set resolved from the
// invalidation table. Extra keys (e.g. a per-note detail view) are appended
// to the table-derived set.
func NewMutation(kind MutationKind, target TargetKind, extra ...ViewKey) Mutation {
	return Mutation{
		Kind:        kind,
		Target:      target,
		Invalidates: append(effectsFor(kind, target), extra...),
	}
}

// effectsFor is the mutation → invalidated-views table.
//
// Note mutations always touch the notes list; create and delete also change
// the dashboard counters. Pin toggles and edits do not (the dashboard shows
// totals, not pin state). Document uploads and deletes touch both the
// documents list and the dashboard; rescans and downloads touch nothing.
func effectsFor(kind MutationKind, target TargetKind) []ViewKey {
	switch target {
	case TargetNote:
		switch kind {
		case MutationCreate, MutationDelete:
			return []ViewKey{ViewNotesList, ViewDashboardStats}
		case MutationUpdate, MutationTogglePin:
			return []ViewKey{ViewNotesList}
		}
	case TargetDocument:
		switch kind {
		case MutationCreate, MutationDelete:
			return []ViewKey{ViewDocumentsList, ViewDashboardStats}
		}
	}
	return nil
}
