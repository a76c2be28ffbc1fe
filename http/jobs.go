package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rmehra/pricekart"
)

// JobRunner executes one scrape run for a job. It is typically
// (*aggregate.Scraper).Run composed with a report writer.
type JobRunner func(ctx context.Context, product, location string) (*pricekart.ExtractionReport, error)

// Ensure JobService implements pricekart.JobService at compile time.
var _ pricekart.JobService = (*JobService)(nil)

// JobService is an in-memory pricekart.JobService. Each enqueued job runs
// in its own goroutine; state survives only for the life of the process.
type JobService struct {
	mu   sync.RWMutex
	jobs map[string]*pricekart.Job

	runner JobRunner

	// Timeout bounds a single job run. Defaults to 5 minutes.
	Timeout time.Duration
}

// NewJobService creates a JobService running jobs with the given runner.
func NewJobService(runner JobRunner) *JobService {
	return &JobService{
		jobs:    make(map[string]*pricekart.Job),
		runner:  runner,
		Timeout: 5 * time.Minute,
	}
}

// Enqueue registers a new job and starts it in the background.
func (s *JobService) Enqueue(ctx context.Context, product, location string) (*pricekart.Job, error) {
	now := time.Now().UTC()
	job := &pricekart.Job{
		ID:        uuid.NewString(),
		Status:    pricekart.JobQueued,
		Product:   product,
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	// Copy before the goroutine starts mutating the stored job.
	snap := *job
	go s.run(job.ID, product, location)

	return &snap, nil
}

// run executes one job to completion. Detached from the request context:
// the job outlives the HTTP request that created it.
func (s *JobService) run(id, product, location string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	s.update(id, func(j *pricekart.Job) {
		j.Status = pricekart.JobRunning
	})

	report, err := s.runner(ctx, product, location)

	s.update(id, func(j *pricekart.Job) {
		if err != nil {
			j.Status = pricekart.JobFailed
			j.Error = err.Error()
			return
		}
		j.Status = pricekart.JobCompleted
		j.Report = report
	})
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*pricekart.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, pricekart.Errorf(pricekart.ENOTFOUND, "job %q not found", id)
	}
	return s.snapshot(job), nil
}

// FindJobs retrieves all known jobs, most recent first.
func (s *JobService) FindJobs(ctx context.Context) ([]*pricekart.Job, error) {
	s.mu.RLock()
	jobs := make([]*pricekart.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, s.snapshot(job))
	}
	s.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID > jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// update mutates one job under the write lock.
func (s *JobService) update(id string, fn func(*pricekart.Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()
}

// snapshot copies a job so callers never share the stored struct.
// Callers must hold at least the read lock.
func (s *JobService) snapshot(job *pricekart.Job) *pricekart.Job {
	copied := *job
	return &copied
}
