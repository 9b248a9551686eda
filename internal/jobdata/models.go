// internal/jobdata/models.go
package jobdata

import (
	"encoding/json"
	"time"
)

// RemoteMode is the work arrangement recorded on a job posting.
type RemoteMode string

const (
	RemoteModeRemote RemoteMode = "REMOTE"
	RemoteModeOnsite RemoteMode = "ONSITE"
	RemoteModeHybrid RemoteMode = "HYBRID"
)

// JobPosting is a single job listing. Postings are read-only to the API
// layer; writes happen through ingestion, not through this service.
type JobPosting struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Type       string     `json:"type"`
	Level      string     `json:"level"`
	Location   string     `json:"location"`
	RemoteMode RemoteMode `json:"remoteMode"`
	SalaryMin  int        `json:"salaryMin"`
	SalaryMax  int        `json:"salaryMax"`
	Company    string     `json:"company"`
	PostedAt   time.Time  `json:"postedAt"`
}

// ProximityInfo is the per-city summary that drives expansion suggestions.
// JobCount is the unfiltered posting count at that city.
type ProximityInfo struct {
	City       string  `json:"city"`
	DistanceKm float64 `json:"distance"`
	JobCount   int     `json:"jobCount"`
}

// LocationSuggestions is the result of a location lookup: postings at the
// queried city, postings at its proximity set, and the per-city summaries
// ordered by distance ascending.
type LocationSuggestions struct {
	PrimaryJobs   []JobPosting    `json:"primaryJobs"`
	NearbyJobs    []JobPosting    `json:"nearbyJobs"`
	ProximityInfo []ProximityInfo `json:"proximityInfo"`
}

// SearchQuery describes a filtered job search. Empty slices mean no
// constraint on that dimension.
type SearchQuery struct {
	Location  string
	JobTypes  []string
	JobLevels []string
	Remote    RemoteMode // empty means any
	Limit     int
}

// SearchResult carries one page of matches plus the total match count
// before the limit was applied.
type SearchResult struct {
	Jobs       []JobPosting `json:"jobs"`
	TotalCount int          `json:"totalCount"`
}

// LocationPreference is a saved location + filter preference for a user.
// UserEmail is empty for anonymous saves.
type LocationPreference struct {
	UserEmail   string          `json:"userEmail,omitempty"`
	Location    string          `json:"location"`
	Preferences json.RawMessage `json:"preferences"`
	SavedAt     time.Time       `json:"savedAt"`
}
