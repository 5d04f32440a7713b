package domain

// Note is a user note. Content is only populated on detail reads; list
// responses omit it (the backend stores it encrypted and decrypts per note).
type Note struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// NoteDraft is the payload for creating a note.
type NoteDraft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NotePatch is a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	IsPinned *bool     `json:"is_pinned,omitempty"`
}

// RelatedNote is a tag-overlap neighbour of a note.
type RelatedNote struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Tags       []string  `json:"tags"`
	UpdatedAt  Timestamp `json:"updated_at"`
	Similarity float64   `json:"similarity"`
}
