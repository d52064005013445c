package jobs

import (
	"context"

	"github.com/wonny/signaldeck/internal/store"
)

// PriceRefreshJob refreshes realtime quotes for the tickers in the
// current derived view during market hours.
type PriceRefreshJob struct {
	signals *store.SignalStore
}

// NewPriceRefreshJob creates the job
func NewPriceRefreshJob(signals *store.SignalStore) *PriceRefreshJob {
	return &PriceRefreshJob{signals: signals}
}

// Name returns the job name
func (j *PriceRefreshJob) Name() string {
	return "price_refresh"
}

// Schedule runs every minute during KRX trading hours
func (j *PriceRefreshJob) Schedule() string {
	return "0 * 9-15 * * MON-FRI"
}

// Run refreshes quotes for the visible tickers
func (j *PriceRefreshJob) Run(ctx context.Context) error {
	tickers := j.signals.ViewTickers()
	if len(tickers) == 0 {
		return nil
	}
	return j.signals.FetchRealtimePrices(ctx, tickers)
}
