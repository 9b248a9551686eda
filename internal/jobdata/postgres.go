// internal/jobdata/postgres.go
package jobdata

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"jobswipe-api/internal/common/database"
	"jobswipe-api/internal/common/errors"
	"jobswipe-api/internal/common/logger"

	"github.com/lib/pq"
)

const (
	// maxSuggestionJobs caps the raw lists fetched per location lookup;
	// the proximity layer truncates further to the request limit.
	maxSuggestionJobs = 100

	defaultSearchLimit = 20
)

const jobColumns = "id, title, job_type, job_level, location, remote_mode, salary_min, salary_max, company, posted_at"

// PostgresStore implements Store and PreferenceStore on PostgreSQL.
type PostgresStore struct {
	client *database.PostgresClient
	logger logger.Logger
}

func NewPostgresStore(client *database.PostgresClient, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "jobdata.postgres"}),
	}
}

// LocationSuggestions fetches primary postings, the proximity set ordered by
// distance, and postings at the proximity cities.
func (s *PostgresStore) LocationSuggestions(ctx context.Context, location string) (*LocationSuggestions, error) {
	primary, err := s.queryJobs(ctx, fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE LOWER(location) = LOWER($1)
		ORDER BY posted_at DESC
		LIMIT $2`, jobColumns),
		location, maxSuggestionJobs)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("primary_jobs", err)
	}

	proximity, err := s.queryProximity(ctx, location)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("proximity_info", err)
	}

	nearby, err := s.queryJobs(ctx, fmt.Sprintf(`
		SELECT %s FROM jobs j
		JOIN city_proximity p ON LOWER(j.location) = LOWER(p.nearby_city)
		WHERE LOWER(p.city) = LOWER($1)
		ORDER BY p.distance_km ASC, j.posted_at DESC
		LIMIT $2`, prefixedJobColumns("j")),
		location, maxSuggestionJobs)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("nearby_jobs", err)
	}

	return &LocationSuggestions{
		PrimaryJobs:   primary,
		NearbyJobs:    nearby,
		ProximityInfo: proximity,
	}, nil
}

// SearchJobs runs a filtered single-location search and reports the total
// match count before the limit.
func (s *PostgresStore) SearchJobs(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	where := []string{"LOWER(location) = LOWER($1)"}
	args := []interface{}{q.Location}

	if len(q.JobTypes) > 0 {
		args = append(args, pq.Array(q.JobTypes))
		where = append(where, fmt.Sprintf("job_type = ANY($%d)", len(args)))
	}
	if len(q.JobLevels) > 0 {
		args = append(args, pq.Array(q.JobLevels))
		where = append(where, fmt.Sprintf("job_level = ANY($%d)", len(args)))
	}
	if q.Remote != "" {
		args = append(args, string(q.Remote))
		where = append(where, fmt.Sprintf("remote_mode = $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM jobs WHERE %s", whereClause)
	if err := s.client.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, errors.NewQueryExecutionFailedError("search_count", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	args = append(args, limit)

	querySQL := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE %s
		ORDER BY posted_at DESC
		LIMIT $%d`, jobColumns, whereClause, len(args))

	jobs, err := s.queryJobs(ctx, querySQL, args...)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("search_jobs", err)
	}

	return &SearchResult{Jobs: jobs, TotalCount: total}, nil
}

// SaveLocationPreference inserts a preference row; the email column stays
// NULL for anonymous saves.
func (s *PostgresStore) SaveLocationPreference(ctx context.Context, pref LocationPreference) error {
	email := sql.NullString{String: pref.UserEmail, Valid: pref.UserEmail != ""}

	_, err := s.client.Exec(ctx, `
		INSERT INTO location_preferences (user_email, location, preferences, saved_at)
		VALUES ($1, $2, $3, $4)`,
		email, pref.Location, []byte(pref.Preferences), pref.SavedAt)
	if err != nil {
		return errors.NewPreferenceSaveFailedError(err)
	}

	return nil
}

func (s *PostgresStore) queryJobs(ctx context.Context, query string, args ...interface{}) ([]JobPosting, error) {
	rows, err := s.client.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []JobPosting{}
	for rows.Next() {
		var j JobPosting
		var remote string
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Type, &j.Level, &j.Location,
			&remote, &j.SalaryMin, &j.SalaryMax, &j.Company, &j.PostedAt,
		); err != nil {
			return nil, err
		}
		j.RemoteMode = RemoteMode(remote)
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

func (s *PostgresStore) queryProximity(ctx context.Context, location string) ([]ProximityInfo, error) {
	rows, err := s.client.Query(ctx, `
		SELECT p.nearby_city, p.distance_km, COUNT(j.id)
		FROM city_proximity p
		LEFT JOIN jobs j ON LOWER(j.location) = LOWER(p.nearby_city)
		WHERE LOWER(p.city) = LOWER($1)
		GROUP BY p.nearby_city, p.distance_km
		ORDER BY p.distance_km ASC`,
		location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	info := []ProximityInfo{}
	for rows.Next() {
		var p ProximityInfo
		if err := rows.Scan(&p.City, &p.DistanceKm, &p.JobCount); err != nil {
			return nil, err
		}
		info = append(info, p)
	}

	return info, rows.Err()
}

func prefixedJobColumns(alias string) string {
	cols := strings.Split(jobColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
