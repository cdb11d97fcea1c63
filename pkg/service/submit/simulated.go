package submit

import (
	"context"
	"time"

	"github.com/hatchway/onboard/pkg/domain/interfaces"
	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// NewSimulated returns the illustrative stand-in submit operation: it
// waits for the policy's delay to mimic real processing, then rejects
// fields that violate the policy and succeeds otherwise. It performs
// no I/O and is the default collaborator of both hosts.
func NewSimulated(policy model.SubmitPolicy) interfaces.SubmitFunc {
	return func(ctx context.Context, fields model.FormFields) (model.SubmitResult, error) {
		if policy.Delay > 0 {
			timer := time.NewTimer(policy.Delay)
			defer timer.Stop()

			select {
			case <-timer.C:
			case <-ctx.Done():
				return model.SubmitResult{}, goerr.Wrap(ctx.Err(), "submission interrupted")
			}
		}

		if reason := policy.FirstViolation(fields); reason != "" {
			return model.SubmitRejected(reason), nil
		}

		return model.SubmitOK(), nil
	}
}
