// internal/proximity/filters.go
package proximity

import (
	"jobswipe-api/internal/jobdata"
)

// RemoteFilter is the client-facing remote-work filter.
type RemoteFilter string

const (
	RemoteAny    RemoteFilter = "any"
	RemoteOnly   RemoteFilter = "remote_only"
	RemoteHybrid RemoteFilter = "hybrid"
	RemoteOnsite RemoteFilter = "onsite"
)

// RemoteFilterValues lists the accepted remote parameter values.
var RemoteFilterValues = []string{
	string(RemoteAny),
	string(RemoteOnly),
	string(RemoteHybrid),
	string(RemoteOnsite),
}

// Filters are the client-supplied posting filters. Empty sets mean no
// constraint on that dimension; matching is conjunctive and exact.
type Filters struct {
	JobTypes  []string
	JobLevels []string
	Remote    RemoteFilter
}

// Matches reports whether a posting passes all filter dimensions.
func (f Filters) Matches(job jobdata.JobPosting) bool {
	if len(f.JobTypes) > 0 && !contains(f.JobTypes, job.Type) {
		return false
	}
	if len(f.JobLevels) > 0 && !contains(f.JobLevels, job.Level) {
		return false
	}
	return f.matchesRemote(job.RemoteMode)
}

// Apply filters a posting list, preserving order.
func (f Filters) Apply(jobs []jobdata.JobPosting) []jobdata.JobPosting {
	out := []jobdata.JobPosting{}
	for _, job := range jobs {
		if f.Matches(job) {
			out = append(out, job)
		}
	}
	return out
}

func (f Filters) matchesRemote(mode jobdata.RemoteMode) bool {
	switch f.Remote {
	case "", RemoteAny:
		return true
	case RemoteOnly:
		return mode == jobdata.RemoteModeRemote
	case RemoteHybrid:
		return mode == jobdata.RemoteModeHybrid
	case RemoteOnsite:
		return mode == jobdata.RemoteModeOnsite
	default:
		return false
	}
}

// StoreRemoteMode translates the filter to the store's posting mode, empty
// when any mode is acceptable.
func (f Filters) StoreRemoteMode() jobdata.RemoteMode {
	switch f.Remote {
	case RemoteOnly:
		return jobdata.RemoteModeRemote
	case RemoteHybrid:
		return jobdata.RemoteModeHybrid
	case RemoteOnsite:
		return jobdata.RemoteModeOnsite
	default:
		return ""
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func truncate(jobs []jobdata.JobPosting, limit int) []jobdata.JobPosting {
	if limit > 0 && len(jobs) > limit {
		return jobs[:limit]
	}
	return jobs
}
