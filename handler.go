package main

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/labstack/echo"
	"github.com/sansad-info/parsers/filestorage"
	"github.com/sansad-info/parsers/pipeline"
	"github.com/sansad-info/parsers/status"
)

// handler dispatches parsing runs and reports their state. One run at a
// time; a run in flight answers new posts with 503.
type handler struct {
	jobs   map[int]pipeline.Job
	runJob func(pipeline.Job, func(status.Status)) (*pipeline.Outcome, error)

	mu       sync.Mutex
	status   status.Status
	err      string
	outcomes map[int]*pipeline.Outcome
}

// used on Post
type postRequest struct {
	Year int `json:"year"`
}

func newHandler(jobs map[int]pipeline.Job, storage filestorage.FileStorage, bucket string) *handler {
	return &handler{
		jobs: jobs,
		runJob: func(job pipeline.Job, notify func(status.Status)) (*pipeline.Outcome, error) {
			return pipeline.RunWithPhases(job, storage, bucket, notify)
		},
		status:   status.Idle,
		outcomes: make(map[int]*pipeline.Outcome),
	}
}

// Get returns current state, last error and the outcomes of finished
// runs.
func (h *handler) Get(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       status.Text(h.status),
		"errorMessage": h.err,
		"outcomes":     h.outcomes,
	})
}

// Post starts the run of the requested year in background.
func (h *handler) Post(c echo.Context) error {
	in := postRequest{}
	if err := c.Bind(&in); err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("the request body sent is invalid: %q", err))
	}
	job, ok := h.jobs[in.Year]
	if !ok {
		return c.String(http.StatusBadRequest, fmt.Sprintf("no job configured for year %d", in.Year))
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != status.Idle {
		return c.String(http.StatusServiceUnavailable, "system is busy processing a run")
	}
	h.status = status.Parsing
	go h.run(job)
	return c.String(http.StatusOK, "run accepted")
}

func (h *handler) run(job pipeline.Job) {
	outcome, err := h.runJob(job, h.setStatus)
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		message := fmt.Sprintf("run of year %d failed, error %q", job.Year, err)
		log.Println(message)
		h.err = message
	} else {
		h.err = ""
		h.outcomes[job.Year] = outcome
	}
	h.status = status.Idle
}

func (h *handler) setStatus(s status.Status) {
	h.mu.Lock()
	h.status = s
	h.mu.Unlock()
}
