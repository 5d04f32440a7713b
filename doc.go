// Package notevault provides a Go client for the NoteVault backend: an
// encrypted notes and documents service with hybrid keyword/AI search.
//
// The client keeps a file-persisted session, attaches the bearer credential
// to every call, and caches list and dashboard views with mutation-driven
// invalidation, so repeated reads do not hammer the backend and writes are
// reflected on the next read.
//
//	client, _ := notevault.New(
//	    notevault.WithBaseURL("https://vault.example.com/api"),
//	)
//	user, _ := client.Auth().Login(ctx, "me@example.com", "secret")
//	notes, _ := client.Notes().List(ctx)
//	res, _ := client.Search().Search(ctx, "react hooks", notevault.SearchOptions{AIBoost: true})
package notevault
