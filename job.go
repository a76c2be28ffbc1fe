package pricekart

import (
	"context"
	"time"
)

// JobStatus describes where a scrape job is in its lifecycle.
type JobStatus string

// Job statuses.
const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job tracks one asynchronous scrape request.
type Job struct {
	ID        string            `json:"id"`
	Status    JobStatus         `json:"status"`
	Product   string            `json:"product"`
	Location  string            `json:"location"`
	Error     string            `json:"error,omitempty"`
	Report    *ExtractionReport `json:"report,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Validate returns an error if the job request fields are invalid.
func (j *Job) Validate() error {
	if j.Product == "" {
		return Errorf(EINVALID, "job product query required")
	}
	if j.Location == "" {
		return Errorf(EINVALID, "job location query required")
	}
	return nil
}

// JobService manages scrape jobs.
type JobService interface {
	// Enqueue registers a new job for the product/location query and
	// starts it. Returns the created job with its assigned ID.
	Enqueue(ctx context.Context, product, location string) (*Job, error)

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if the job does not exist.
	FindJobByID(ctx context.Context, id string) (*Job, error)

	// FindJobs retrieves all known jobs, most recent first.
	FindJobs(ctx context.Context) ([]*Job, error)
}
