// internal/proximity/service.go
package proximity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobswipe-api/internal/common/errors"
	"jobswipe-api/internal/common/logger"
	"jobswipe-api/internal/common/metrics"
	"jobswipe-api/internal/jobdata"
)

const (
	// DefaultLimit applies when the client omits or mangles the limit param.
	DefaultLimit = 20
	// MaxLimit clamps the per-list result size.
	MaxLimit = 50
	// ExpandThreshold: fewer filtered primary results than this flips the
	// expand-search suggestion on.
	ExpandThreshold = 5
	// MaxNextCities caps the suggested expansion cities.
	MaxNextCities = 3
	// ExpandCityLimit is the per-city page size during expansion.
	ExpandCityLimit = 20
)

// QueryParams is a validated proximity query.
type QueryParams struct {
	Location string
	Filters  Filters
	Limit    int
}

// Suggestions tells the client whether widening the search is worthwhile.
type Suggestions struct {
	ExpandSearch    bool                    `json:"expandSearch"`
	NextCities      []jobdata.ProximityInfo `json:"nextCities"`
	TotalNearbyJobs int                     `json:"totalNearbyJobs"`
}

// Meta carries summary counts. TotalAvailable sums the unfiltered per-city
// counts from the proximity set, not the filtered list lengths.
type Meta struct {
	PrimaryCount   int `json:"primaryCount"`
	NearbyCount    int `json:"nearbyCount"`
	TotalAvailable int `json:"totalAvailable"`
}

// QueryResult is the full proximity query payload.
type QueryResult struct {
	Location      string                  `json:"location"`
	PrimaryJobs   []jobdata.JobPosting    `json:"primaryJobs"`
	ProximityInfo []jobdata.ProximityInfo `json:"proximityInfo"`
	Suggestions   Suggestions             `json:"suggestions"`
	NearbyJobs    []jobdata.JobPosting    `json:"nearbyJobs"`
	Meta          Meta                    `json:"meta"`
}

// ExpandParams drives an expand-search batch.
type ExpandParams struct {
	Location string
	Filters  Filters
}

// CityExpansion is the per-city slice of an expansion batch.
type CityExpansion struct {
	City       string               `json:"city"`
	Distance   float64              `json:"distance"`
	Jobs       []jobdata.JobPosting `json:"jobs"`
	TotalCount int                  `json:"totalCount"`
}

// ExpandResult aggregates the whole batch.
type ExpandResult struct {
	ExpandedResults []CityExpansion `json:"expandedResults"`
	Suggestion      string          `json:"suggestion"`
}

// Service implements the proximity discovery operations over an injected
// job-data store.
type Service struct {
	store  jobdata.Store
	prefs  jobdata.PreferenceStore
	logger logger.Logger
}

func NewService(store jobdata.Store, prefs jobdata.PreferenceStore, log logger.Logger) *Service {
	return &Service{
		store:  store,
		prefs:  prefs,
		logger: log.WithFields(map[string]interface{}{"component": "proximity"}),
	}
}

// Query runs a proximity lookup for one location: fetch, filter both lists
// independently, truncate to the limit, and derive the expansion suggestion.
func (s *Service) Query(ctx context.Context, params QueryParams) (*QueryResult, error) {
	limit := clampLimit(params.Limit)

	suggestions, err := s.store.LocationSuggestions(ctx, params.Location)
	if err != nil {
		metrics.ProximityQueriesTotal.WithLabelValues("error").Inc()
		return nil, errors.NewSuggestionLookupFailedError(params.Location, err)
	}

	primary := truncate(params.Filters.Apply(suggestions.PrimaryJobs), limit)
	nearby := truncate(params.Filters.Apply(suggestions.NearbyJobs), limit)

	nextCities := suggestions.ProximityInfo
	if len(nextCities) > MaxNextCities {
		nextCities = nextCities[:MaxNextCities]
	}

	// TotalAvailable intentionally sums the unfiltered per-city counts so the
	// client sees true market size alongside the filtered lists.
	totalAvailable := 0
	for _, info := range suggestions.ProximityInfo {
		totalAvailable += info.JobCount
	}

	totalNearby := 0
	for _, info := range nextCities {
		totalNearby += info.JobCount
	}

	metrics.ProximityQueriesTotal.WithLabelValues("success").Inc()
	s.logger.Debug("proximity query completed", map[string]interface{}{
		"location":     params.Location,
		"primaryCount": len(primary),
		"nearbyCount":  len(nearby),
	})

	return &QueryResult{
		Location:      params.Location,
		PrimaryJobs:   primary,
		ProximityInfo: suggestions.ProximityInfo,
		Suggestions: Suggestions{
			ExpandSearch:    len(primary) < ExpandThreshold,
			NextCities:      nextCities,
			TotalNearbyJobs: totalNearby,
		},
		NearbyJobs: nearby,
		Meta: Meta{
			PrimaryCount:   len(primary),
			NearbyCount:    len(nearby),
			TotalAvailable: totalAvailable,
		},
	}, nil
}

// Expand re-queries the top proximity cities concurrently with the caller's
// filters. The batch is all-or-nothing: one failed city query fails the
// whole expansion.
func (s *Service) Expand(ctx context.Context, params ExpandParams) (*ExpandResult, error) {
	suggestions, err := s.store.LocationSuggestions(ctx, params.Location)
	if err != nil {
		metrics.ExpansionBatchesTotal.WithLabelValues("error").Inc()
		return nil, errors.NewSuggestionLookupFailedError(params.Location, err)
	}

	cities := suggestions.ProximityInfo
	if len(cities) > MaxNextCities {
		cities = cities[:MaxNextCities]
	}

	type cityOutcome struct {
		result *jobdata.SearchResult
		err    error
	}

	outcomes := make([]cityOutcome, len(cities))
	var wg sync.WaitGroup

	for i, city := range cities {
		wg.Add(1)
		go func(i int, city jobdata.ProximityInfo) {
			defer wg.Done()

			result, err := s.store.SearchJobs(ctx, jobdata.SearchQuery{
				Location:  city.City,
				JobTypes:  params.Filters.JobTypes,
				JobLevels: params.Filters.JobLevels,
				Remote:    params.Filters.StoreRemoteMode(),
				Limit:     ExpandCityLimit,
			})
			outcomes[i] = cityOutcome{result: result, err: err}
		}(i, city)
	}
	wg.Wait()

	for i, outcome := range outcomes {
		if outcome.err != nil {
			metrics.ExpansionBatchesTotal.WithLabelValues("error").Inc()
			s.logger.Warn("expansion batch aborted", map[string]interface{}{
				"location": params.Location,
				"city":     cities[i].City,
				"error":    outcome.err.Error(),
			})
			return nil, errors.NewExpansionFailedError(cities[i].City, outcome.err)
		}
	}

	expanded := make([]CityExpansion, 0, len(cities))
	totalFound := 0
	for i, city := range cities {
		expanded = append(expanded, CityExpansion{
			City:       city.City,
			Distance:   city.DistanceKm,
			Jobs:       outcomes[i].result.Jobs,
			TotalCount: outcomes[i].result.TotalCount,
		})
		totalFound += len(outcomes[i].result.Jobs)
	}

	metrics.ExpansionBatchesTotal.WithLabelValues("success").Inc()

	return &ExpandResult{
		ExpandedResults: expanded,
		Suggestion: fmt.Sprintf("Found %d additional jobs in %d nearby cities",
			totalFound, len(expanded)),
	}, nil
}

// SavePreference persists a location preference for later sessions.
func (s *Service) SavePreference(ctx context.Context, pref jobdata.LocationPreference) error {
	if pref.SavedAt.IsZero() {
		pref.SavedAt = time.Now().UTC()
	}
	return s.prefs.SaveLocationPreference(ctx, pref)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
