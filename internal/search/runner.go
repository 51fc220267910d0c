package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"viralscout/internal/apify"
	"viralscout/internal/metrics"
	"viralscout/pkg/retry"
)

var errEmptyDataset = errors.New("dataset returned no items")

// asyncSpec parameterizes one submit/poll/fetch chain. The constants
// differ per platform because provider SLAs differ: YouTube runs take
// materially longer than TikTok or Instagram ones.
type asyncSpec struct {
	platform       Platform
	actor          string
	input          any
	overallTimeout time.Duration
	pollInterval   time.Duration
	pollAttempts   int // 0 skips status polling; dataset retries serve as the wait
	statusTimeout  time.Duration
	fetchDelay     time.Duration
	fetchAttempts  int
}

// runAsync drives an asynchronous actor run: submit, watch the status
// until terminal, then fetch the dataset with retries until it yields a
// non-empty item list. Every failure mode surfaces as an error for the
// job client to degrade into an empty result set.
func runAsync(ctx context.Context, api *apify.Client, log *zap.Logger, spec asyncSpec) ([]apify.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, spec.overallTimeout)
	defer cancel()

	run, err := api.StartRun(ctx, spec.actor, spec.input)
	if err != nil {
		return nil, err
	}
	if run.DefaultDatasetID == "" {
		// Without a dataset there is nothing to fetch later.
		return nil, fmt.Errorf("run %s accepted without a dataset ID", run.ID)
	}
	if run.Failed() {
		return nil, fmt.Errorf("run %s rejected with status %s", run.ID, run.Status)
	}

	if spec.pollAttempts > 0 && run.Status != apify.StatusSucceeded {
		err := retry.Poll(ctx, spec.pollInterval, spec.pollAttempts, func(ctx context.Context) (bool, error) {
			sctx, scancel := context.WithTimeout(ctx, spec.statusTimeout)
			defer scancel()

			info, err := api.RunStatus(sctx, run.ID)
			if err != nil {
				// Absent or non-2xx status responses are transient: keep
				// polling until the attempt budget runs out.
				metrics.PollAttemptsTotal.WithLabelValues(string(spec.platform), "error").Inc()
				log.Debug("run status probe failed", zap.String("run", run.ID), zap.Error(err))
				return false, nil
			}

			metrics.PollAttemptsTotal.WithLabelValues(string(spec.platform), info.Status).Inc()
			if info.Failed() {
				return false, fmt.Errorf("run %s ended with status %s", run.ID, info.Status)
			}
			return info.Status == apify.StatusSucceeded, nil
		})
		if err != nil {
			if errors.Is(err, retry.ErrExhausted) {
				return nil, fmt.Errorf("run %s never reached a terminal status", run.ID)
			}
			return nil, err
		}
	}

	// The dataset may legitimately be empty while still populating, so
	// an empty page is retried rather than treated as final.
	var items []apify.Item
	err = retry.Fixed(ctx, spec.fetchAttempts, spec.fetchDelay, func() error {
		got, err := api.DatasetItems(ctx, run.DefaultDatasetID)
		if err != nil {
			log.Debug("dataset fetch failed", zap.String("dataset", run.DefaultDatasetID), zap.Error(err))
			return err
		}
		if len(got) == 0 {
			return errEmptyDataset
		}
		items = got
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", run.DefaultDatasetID, err)
	}
	return items, nil
}
