package jobdata

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobswipe-api/internal/common/database"
	"jobswipe-api/internal/common/errors"
	"jobswipe-api/internal/common/logger"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := &database.PostgresClient{DB: db}
	return NewPostgresStore(client, logger.NewTestLogger(t)), mock
}

func jobRows(titles ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "job_type", "job_level", "location",
		"remote_mode", "salary_min", "salary_max", "company", "posted_at",
	})
	for i, title := range titles {
		rows.AddRow(
			fmt.Sprintf("job-%d", i), title, "full-time", "mid", "Milan",
			"ONSITE", 40000, 60000, "Acme", time.Now(),
		)
	}
	return rows
}

func TestPostgresStore_LocationSuggestions(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE LOWER\(location\) = LOWER\(\$1\) ORDER BY posted_at DESC LIMIT \$2`).
		WithArgs("Milan", maxSuggestionJobs).
		WillReturnRows(jobRows("Backend Engineer", "Data Analyst"))

	mock.ExpectQuery(`SELECT p.nearby_city, p.distance_km, COUNT\(j.id\) FROM city_proximity p`).
		WithArgs("Milan").
		WillReturnRows(sqlmock.NewRows([]string{"nearby_city", "distance_km", "count"}).
			AddRow("Brescia", 93.0, 40).
			AddRow("Turin", 126.0, 12))

	mock.ExpectQuery(`SELECT (.+) FROM jobs j JOIN city_proximity p`).
		WithArgs("Milan", maxSuggestionJobs).
		WillReturnRows(jobRows("Frontend Engineer"))

	suggestions, err := store.LocationSuggestions(context.Background(), "Milan")
	require.NoError(t, err)

	assert.Len(t, suggestions.PrimaryJobs, 2)
	assert.Equal(t, "Backend Engineer", suggestions.PrimaryJobs[0].Title)
	assert.Equal(t, RemoteModeOnsite, suggestions.PrimaryJobs[0].RemoteMode)

	require.Len(t, suggestions.ProximityInfo, 2)
	assert.Equal(t, "Brescia", suggestions.ProximityInfo[0].City)
	assert.Equal(t, 93.0, suggestions.ProximityInfo[0].DistanceKm)
	assert.Equal(t, 40, suggestions.ProximityInfo[0].JobCount)

	assert.Len(t, suggestions.NearbyJobs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LocationSuggestions_EmptyCity(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE LOWER\(location\)`).
		WithArgs("Remoteville", maxSuggestionJobs).
		WillReturnRows(jobRows())
	mock.ExpectQuery(`SELECT p.nearby_city`).
		WithArgs("Remoteville").
		WillReturnRows(sqlmock.NewRows([]string{"nearby_city", "distance_km", "count"}))
	mock.ExpectQuery(`SELECT (.+) FROM jobs j JOIN city_proximity p`).
		WithArgs("Remoteville", maxSuggestionJobs).
		WillReturnRows(jobRows())

	suggestions, err := store.LocationSuggestions(context.Background(), "Remoteville")
	require.NoError(t, err)

	assert.Empty(t, suggestions.PrimaryJobs)
	assert.Empty(t, suggestions.ProximityInfo)
	assert.Empty(t, suggestions.NearbyJobs)
	assert.NotNil(t, suggestions.PrimaryJobs)
}

func TestPostgresStore_LocationSuggestions_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE LOWER\(location\)`).
		WithArgs("Milan", maxSuggestionJobs).
		WillReturnError(fmt.Errorf("connection reset"))

	_, err := store.LocationSuggestions(context.Background(), "Milan")
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
}

func TestPostgresStore_SearchJobs(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE LOWER\(location\) = LOWER\(\$1\) AND job_type = ANY\(\$2\) AND remote_mode = \$3`).
		WithArgs("Brescia", pq.Array([]string{"full-time"}), "REMOTE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE LOWER\(location\) = LOWER\(\$1\) AND job_type = ANY\(\$2\) AND remote_mode = \$3 ORDER BY posted_at DESC LIMIT \$4`).
		WithArgs("Brescia", pq.Array([]string{"full-time"}), "REMOTE", 10).
		WillReturnRows(jobRows("Backend Engineer", "SRE"))

	result, err := store.SearchJobs(context.Background(), SearchQuery{
		Location: "Brescia",
		JobTypes: []string{"full-time"},
		Remote:   RemoteModeRemote,
		Limit:    10,
	})
	require.NoError(t, err)

	assert.Equal(t, 17, result.TotalCount)
	assert.Len(t, result.Jobs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SearchJobs_NoFilters(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE LOWER\(location\) = LOWER\(\$1\)`).
		WithArgs("Turin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE LOWER\(location\) = LOWER\(\$1\) ORDER BY posted_at DESC LIMIT \$2`).
		WithArgs("Turin", defaultSearchLimit).
		WillReturnRows(jobRows("A", "B", "C"))

	result, err := store.SearchJobs(context.Background(), SearchQuery{Location: "Turin"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	assert.Len(t, result.Jobs, 3)
}

func TestPostgresStore_SaveLocationPreference(t *testing.T) {
	store, mock := newMockStore(t)
	savedAt := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO location_preferences \(user_email, location, preferences, saved_at\)`).
		WithArgs("user@example.com", "Milan", []byte(`{"remote":"any"}`), savedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveLocationPreference(context.Background(), LocationPreference{
		UserEmail:   "user@example.com",
		Location:    "Milan",
		Preferences: []byte(`{"remote":"any"}`),
		SavedAt:     savedAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveLocationPreference_Anonymous(t *testing.T) {
	store, mock := newMockStore(t)
	savedAt := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO location_preferences`).
		WithArgs(nil, "Milan", []byte(`{}`), savedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveLocationPreference(context.Background(), LocationPreference{
		Location:    "Milan",
		Preferences: []byte(`{}`),
		SavedAt:     savedAt,
	})
	require.NoError(t, err)
}

func TestPostgresStore_SaveLocationPreference_Error(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO location_preferences`).
		WillReturnError(fmt.Errorf("disk full"))

	err := store.SaveLocationPreference(context.Background(), LocationPreference{
		Location:    "Milan",
		Preferences: []byte(`{}`),
		SavedAt:     time.Now(),
	})
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePreferenceSaveFailed, stdErr.Code)
}
