package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/rmehra/pricekart"
	pkhttp "github.com/rmehra/pricekart/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobService(t *testing.T) {
	t.Parallel()

	t.Run("runs an enqueued job to completion", func(t *testing.T) {
		t.Parallel()

		svc := pkhttp.NewJobService(func(ctx context.Context, product, location string) (*pricekart.ExtractionReport, error) {
			return pricekart.NewReport(product, location, []pricekart.SiteResult{
				{Website: pricekart.SiteDMart, Products: []pricekart.Product{{Name: "Tata Salt 1kg"}}},
			}, 5), nil
		})

		job, err := svc.Enqueue(context.Background(), "salt", "Mumbai")
		require.NoError(t, err)
		assert.NotEmpty(t, job.ID)
		assert.Equal(t, pricekart.JobQueued, job.Status)

		require.Eventually(t, func() bool {
			j, err := svc.FindJobByID(context.Background(), job.ID)
			return err == nil && j.Status == pricekart.JobCompleted
		}, 2*time.Second, 10*time.Millisecond)

		done, err := svc.FindJobByID(context.Background(), job.ID)
		require.NoError(t, err)
		require.NotNil(t, done.Report)
		assert.Equal(t, 1, done.Report.Summary.TotalProducts)
		assert.Empty(t, done.Error)
	})

	t.Run("records runner failures", func(t *testing.T) {
		t.Parallel()

		svc := pkhttp.NewJobService(func(ctx context.Context, product, location string) (*pricekart.ExtractionReport, error) {
			return nil, pricekart.Errorf(pricekart.EUNAVAILABLE, "all 5 sites failed")
		})

		job, err := svc.Enqueue(context.Background(), "salt", "Mumbai")
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			j, err := svc.FindJobByID(context.Background(), job.ID)
			return err == nil && j.Status == pricekart.JobFailed
		}, 2*time.Second, 10*time.Millisecond)

		failed, err := svc.FindJobByID(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Contains(t, failed.Error, "all 5 sites failed")
		assert.Nil(t, failed.Report)
	})

	t.Run("validates the request", func(t *testing.T) {
		t.Parallel()

		svc := pkhttp.NewJobService(func(ctx context.Context, product, location string) (*pricekart.ExtractionReport, error) {
			panic("runner must not be called")
		})

		_, err := svc.Enqueue(context.Background(), "", "Mumbai")
		assert.Equal(t, pricekart.EINVALID, pricekart.ErrorCode(err))

		_, err = svc.Enqueue(context.Background(), "salt", "")
		assert.Equal(t, pricekart.EINVALID, pricekart.ErrorCode(err))
	})

	t.Run("unknown job returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		svc := pkhttp.NewJobService(nil)
		_, err := svc.FindJobByID(context.Background(), "nope")
		assert.Equal(t, pricekart.ENOTFOUND, pricekart.ErrorCode(err))
	})

	t.Run("lists jobs most recent first", func(t *testing.T) {
		t.Parallel()

		svc := pkhttp.NewJobService(func(ctx context.Context, product, location string) (*pricekart.ExtractionReport, error) {
			return pricekart.NewReport(product, location, nil, 5), nil
		})

		first, err := svc.Enqueue(context.Background(), "salt", "Mumbai")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		second, err := svc.Enqueue(context.Background(), "milk", "Mumbai")
		require.NoError(t, err)

		jobs, err := svc.FindJobs(context.Background())
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, second.ID, jobs[0].ID)
		assert.Equal(t, first.ID, jobs[1].ID)
	})
}
