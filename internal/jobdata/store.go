// internal/jobdata/store.go
package jobdata

import "context"

// Store is the job-data collaborator contract consumed by the proximity
// layer. Implementations are injected into request handlers; nothing in
// this package holds global state.
type Store interface {
	// LocationSuggestions fetches postings at the queried location, postings
	// at its proximity set, and the per-city summaries.
	LocationSuggestions(ctx context.Context, location string) (*LocationSuggestions, error)

	// SearchJobs runs a filtered job search for a single location.
	SearchJobs(ctx context.Context, q SearchQuery) (*SearchResult, error)
}

// PreferenceStore persists saved location preferences.
type PreferenceStore interface {
	SaveLocationPreference(ctx context.Context, pref LocationPreference) error
}
