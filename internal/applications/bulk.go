package applications

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"recruit-backend/internal/shared/metrics"
)

const bulkWorkers = 4

// BulkFailure records why one application in a bulk request was not updated.
type BulkFailure struct {
	ApplicationID string `json:"applicationId"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// BulkResult partitions a bulk status change into the applications that were
// updated and those that were not.
type BulkResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// BulkUpdateStatus applies the same status change to many applications. Each
// item goes through the same transition checks as a single update; one item
// failing never rolls back the others. Cancelling the context stops the run
// and reports the untouched items as failed.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []string, rawStatus, actorID, note string) (BulkResult, error) {
	if _, ok := ParseStatus(rawStatus); !ok {
		return BulkResult{}, fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}
	if len(ids) == 0 {
		return BulkResult{}, fmt.Errorf("%w: applicationIds must not be empty", ErrInvalidInput)
	}

	var (
		mu     sync.Mutex
		result BulkResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkWorkers)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				mu.Lock()
				result.Failed = append(result.Failed, BulkFailure{
					ApplicationID: id,
					Code:          "cancelled",
					Message:       err.Error(),
				})
				mu.Unlock()
				return nil
			}
			_, _, err := s.UpdateStatus(gctx, id, rawStatus, actorID, note)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BulkFailure{
					ApplicationID: id,
					Code:          bulkFailureCode(err),
					Message:       err.Error(),
				})
				return nil
			}
			result.Succeeded = append(result.Succeeded, id)
			return nil
		})
	}
	_ = g.Wait()

	metrics.IncBulkOp()
	metrics.AddBulkItemFailures(len(result.Failed))
	if result.Succeeded == nil {
		result.Succeeded = []string{}
	}
	if result.Failed == nil {
		result.Failed = []BulkFailure{}
	}
	return result, nil
}

func bulkFailureCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal_error"
	}
}
