package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/signaldeck/internal/scheduler"
	"github.com/wonny/signaldeck/pkg/logger"
)

// JobsHandler exposes the background job registry and history
// SSOT: 스케줄 작업 API 핸들러는 이 구조체에서만
type JobsHandler struct {
	sched  *scheduler.Scheduler
	logger *logger.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(s *scheduler.Scheduler, log *logger.Logger) *JobsHandler {
	return &JobsHandler{sched: s, logger: log}
}

// jobStatus is one job's entry in the list response
type jobStatus struct {
	Name       string               `json:"name"`
	LastResult *scheduler.JobResult `json:"last_result,omitempty"`
}

// List returns every registered job and its most recent result
// GET /api/v1/system/jobs
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.sched.Jobs()

	jobs := make([]jobStatus, 0, len(names))
	for _, name := range names {
		status := jobStatus{Name: name}
		if result, ok := h.sched.LastResult(name); ok {
			status.LastResult = &result
		}
		jobs = append(jobs, status)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    jobs,
	})
}

// Run triggers a job immediately, outside of its schedule
// POST /api/v1/system/jobs/{name}/run
func (h *JobsHandler) Run(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.sched.RunJob(name); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.logger.WithField("job", name).Info("Job triggered via API")

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"success": true,
		"job":     name,
	})
}
