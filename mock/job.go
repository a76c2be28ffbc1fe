package mock

import (
	"context"

	"github.com/rmehra/pricekart"
)

var _ pricekart.JobService = (*JobService)(nil)

// JobService is a mock implementation of pricekart.JobService.
type JobService struct {
	EnqueueFn     func(ctx context.Context, product, location string) (*pricekart.Job, error)
	FindJobByIDFn func(ctx context.Context, id string) (*pricekart.Job, error)
	FindJobsFn    func(ctx context.Context) ([]*pricekart.Job, error)
}

func (s *JobService) Enqueue(ctx context.Context, product, location string) (*pricekart.Job, error) {
	return s.EnqueueFn(ctx, product, location)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*pricekart.Job, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) FindJobs(ctx context.Context) ([]*pricekart.Job, error) {
	return s.FindJobsFn(ctx)
}
