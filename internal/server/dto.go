// internal/server/dto.go
package server

import (
	"jobswipe-api/internal/proximity"
)

// Actions accepted by POST /api/jobs/proximity.
const (
	ActionExpandSearch   = "expand-search"
	ActionSavePreference = "save-location-preference"
)

// ProximityActionRequest is the POST /api/jobs/proximity body.
type ProximityActionRequest struct {
	Action      string            `json:"action" binding:"required"`
	Location    string            `json:"location"`
	Preferences PreferencePayload `json:"preferences"`
}

// PreferencePayload mirrors the client-side filter preference shape.
type PreferencePayload struct {
	JobType []string `json:"jobType"`
	Level   []string `json:"level"`
	Remote  string   `json:"remote"`
}

// ToFilters converts the payload to domain filters. An empty remote value
// means any.
func (p PreferencePayload) ToFilters() proximity.Filters {
	remote := proximity.RemoteFilter(p.Remote)
	if p.Remote == "" {
		remote = proximity.RemoteAny
	}
	return proximity.Filters{
		JobTypes:  p.JobType,
		JobLevels: p.Level,
		Remote:    remote,
	}
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the POST /api/auth/refresh body.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
