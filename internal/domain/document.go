package domain

// Document is an uploaded file with its AI-extracted summary.
type Document struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	FileURL      string    `json:"file_url"`
	Summary      string    `json:"summary"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    Timestamp `json:"created_at"`
}
