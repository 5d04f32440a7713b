package notevault

import "github.com/notevault/notevault-go/internal/domain"

// Domain types re-exported for SDK consumers.
type (
	User         = domain.User
	Session      = domain.Session
	Note         = domain.Note
	NoteDraft    = domain.NoteDraft
	NotePatch    = domain.NotePatch
	RelatedNote  = domain.RelatedNote
	Document     = domain.Document
	SearchResult = domain.SearchResult
	ScoredItem   = domain.ScoredItem
	ItemKind     = domain.ItemKind
	Stats        = domain.Stats
	TagCount     = domain.TagCount
	RecentNote   = domain.RecentNote
	RecentDoc    = domain.RecentDocument
	WeekActivity = domain.WeekActivity
)

// Item kinds returned by search.
const (
	KindNote     = domain.KindNote
	KindDocument = domain.KindDocument
)
