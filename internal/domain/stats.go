package domain

// Stats is the dashboard aggregate for the current user.
type Stats struct {
	TotalNotes      int              `json:"total_notes"`
	TotalDocuments  int              `json:"total_documents"`
	AISummaries     int              `json:"ai_summaries"`
	StorageMB       float64          `json:"storage_mb"`
	NotesWithTags   int              `json:"notes_with_tags"`
	TopTags         []TagCount       `json:"top_tags"`
	RecentNotes     []RecentNote     `json:"recent_notes"`
	RecentDocuments []RecentDocument `json:"recent_documents"`
	WeeklyActivity  []WeekActivity   `json:"weekly_activity"`
}

// TagCount is one entry of the tag distribution.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// RecentNote is a dashboard recent-activity row.
type RecentNote struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// RecentDocument is a dashboard recent-activity row.
type RecentDocument struct {
	ID           int       `json:"id"`
	OriginalName string    `json:"original_name"`
	CreatedAt    Timestamp `json:"created_at"`
}

// WeekActivity is one bucket of the 8-week activity chart.
type WeekActivity struct {
	Week      string `json:"week"`
	Notes     int    `json:"notes"`
	Documents int    `json:"documents"`
}
