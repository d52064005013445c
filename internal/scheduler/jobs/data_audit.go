package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/signaldeck/internal/store"
	"github.com/wonny/signaldeck/pkg/logger"
)

// DataAuditJob checks upstream collection freshness after the close
// and flags stale pipelines in the logs.
type DataAuditJob struct {
	health *store.HealthStore
	logger *logger.Logger
}

// NewDataAuditJob creates the job
func NewDataAuditJob(health *store.HealthStore, log *logger.Logger) *DataAuditJob {
	return &DataAuditJob{health: health, logger: log}
}

// Name returns the job name
func (j *DataAuditJob) Name() string {
	return "data_audit"
}

// Schedule runs after the KRX close on trading days
func (j *DataAuditJob) Schedule() string {
	return "0 30 16 * * MON-FRI"
}

// Run refreshes data status and reports staleness
func (j *DataAuditJob) Run(ctx context.Context) error {
	if err := j.health.FetchDataStatus(ctx); err != nil {
		return fmt.Errorf("data status fetch failed: %w", err)
	}

	state := j.health.DataStatus()
	if state.Data == nil {
		return nil
	}

	if state.Data.Stale {
		j.logger.WithFields(map[string]interface{}{
			"last_collected_at": state.Data.LastCollectedAt,
			"stock_count":       state.Data.StockCount,
		}).Warn("Upstream data is stale")
	}

	return nil
}
