package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo"
	"github.com/sansad-info/parsers/pipeline"
	"github.com/sansad-info/parsers/status"
)

type statusResponse struct {
	Status       string                       `json:"status"`
	ErrorMessage string                       `json:"errorMessage"`
	Outcomes     map[string]*pipeline.Outcome `json:"outcomes"`
}

func postYear(e *echo.Echo, h *handler, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h.Post(e.NewContext(req, rec))
}

func getStatus(t *testing.T, e *echo.Echo, h *handler) statusResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/parse", nil)
	rec := httptest.NewRecorder()
	if err := h.Get(e.NewContext(req, rec)); err != nil {
		t.Fatalf("expected err nil on get, got %q", err)
	}
	var out statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("expected err nil when unmarshalling the status response, got %q", err)
	}
	return out
}

func waitIdle(t *testing.T, e *echo.Echo, h *handler) statusResponse {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		out := getStatus(t, e, h)
		if out.Status == status.Text(status.Idle) {
			return out
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("run never went back to idle")
	return statusResponse{}
}

func TestPostDispatchesRun(t *testing.T) {
	e := echo.New()
	release := make(chan struct{})
	h := &handler{
		jobs: map[int]pipeline.Job{2019: {Year: 2019}},
		runJob: func(job pipeline.Job, notify func(status.Status)) (*pipeline.Outcome, error) {
			notify(status.Reconciling)
			<-release
			return &pipeline.Outcome{Year: job.Year, Records: 543}, nil
		},
		status:   status.Idle,
		outcomes: make(map[int]*pipeline.Outcome),
	}

	rec, err := postYear(e, h, `{"year":2019}`)
	if err != nil {
		t.Fatalf("expected err nil on post, got %q", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("want status 200 for an accepted run, got %d", rec.Code)
	}

	rec, err = postYear(e, h, `{"year":2019}`)
	if err != nil {
		t.Fatalf("expected err nil on post, got %q", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("want status 503 while a run is in flight, got %d", rec.Code)
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		out := getStatus(t, e, h)
		if out.Status == status.Text(status.Reconciling) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("run never reported the reconciling phase, last %q", out.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	close(release)
	out := waitIdle(t, e, h)
	outcome, ok := out.Outcomes["2019"]
	if !ok {
		t.Fatalf("want an outcome for 2019, got %v", out.Outcomes)
	}
	if outcome.Records != 543 {
		t.Errorf("want 543 records, got %d", outcome.Records)
	}
	if out.ErrorMessage != "" {
		t.Errorf("want an empty error message, got %s", out.ErrorMessage)
	}
}

func TestPostUnknownYear(t *testing.T) {
	e := echo.New()
	h := newHandler(pipeline.DefaultJobs("data"), nil, "out")

	rec, err := postYear(e, h, `{"year":1900}`)
	if err != nil {
		t.Fatalf("expected err nil on post, got %q", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("want status 400 for a year with no job, got %d", rec.Code)
	}
}

func TestRunFailureIsReported(t *testing.T) {
	e := echo.New()
	h := &handler{
		jobs: map[int]pipeline.Job{2004: {Year: 2004}},
		runJob: func(job pipeline.Job, notify func(status.Status)) (*pipeline.Outcome, error) {
			return nil, errors.New("summary file missing")
		},
		status:   status.Idle,
		outcomes: make(map[int]*pipeline.Outcome),
	}

	if _, err := postYear(e, h, `{"year":2004}`); err != nil {
		t.Fatalf("expected err nil on post, got %q", err)
	}
	out := waitIdle(t, e, h)
	if !strings.Contains(out.ErrorMessage, "summary file missing") {
		t.Errorf("want the run error reported on get, got %q", out.ErrorMessage)
	}
}
