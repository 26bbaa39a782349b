// Package pipeline runs one election year end to end: open the summary
// and detailed report files, parse both, reconcile them and persist the
// result as a JSON file on the configured storage.
package pipeline

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/matryer/try"
	"github.com/sansad-info/parsers/detailed"
	"github.com/sansad-info/parsers/filestorage"
	"github.com/sansad-info/parsers/reconcile"
	"github.com/sansad-info/parsers/report"
	"github.com/sansad-info/parsers/source"
	"github.com/sansad-info/parsers/status"
	"github.com/sansad-info/parsers/summary"
)

const maxAttempts = 5

// Formats of the source report files.
const (
	FormatXLSX = "XLSX"
	FormatText = "TEXT"
)

// Job describes one year's input files and where its output goes.
type Job struct {
	Year         int
	Format       string
	SummaryPath  string
	DetailedPath string
	OutputName   string
}

// Outcome is what one finished job reports back.
type Outcome struct {
	Year        int
	Records     int
	StoredAt    string
	Diagnostics *reconcile.Diagnostics
}

// Run executes a single job. The bucket argument follows the semantics
// of the given storage backend.
func Run(job Job, storage filestorage.FileStorage, bucket string) (*Outcome, error) {
	return RunWithPhases(job, storage, bucket, nil)
}

// RunWithPhases executes a single job and reports each phase change
// through notify, so a caller can expose the job's progress. A nil
// notify is accepted.
func RunWithPhases(job Job, storage filestorage.FileStorage, bucket string, notify func(status.Status)) (*Outcome, error) {
	phase := func(s status.Status) {
		if notify != nil {
			notify(s)
		}
	}
	phase(status.Parsing)
	records, err := parseSummary(job)
	if err != nil {
		return nil, err
	}
	idx, err := detailed.NewIndex(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build the identity index for year %d, error %q", job.Year, err)
	}
	ext, err := parseDetailed(job, idx)
	if err != nil {
		return nil, err
	}
	phase(status.Reconciling)
	diag := reconcile.Run(records, ext)

	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records of year %d, error %q", job.Year, err)
	}
	var storedAt string
	err = try.Do(func(attempt int) (bool, error) {
		var uploadErr error
		storedAt, uploadErr = storage.Upload(b, bucket, job.OutputName)
		return attempt < maxAttempts, uploadErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save output file [%s] on bucket [%s], error %q", job.OutputName, bucket, err)
	}
	return &Outcome{
		Year:        job.Year,
		Records:     len(records),
		StoredAt:    storedAt,
		Diagnostics: diag,
	}, nil
}

// RunAll executes every job, isolating failures so one broken year does
// not sink the batch. It returns the outcomes of the jobs that
// finished.
func RunAll(jobs []Job, storage filestorage.FileStorage, bucket string) []*Outcome {
	var outcomes []*Outcome
	for _, job := range jobs {
		outcome, err := Run(job, storage, bucket)
		if err != nil {
			log.Printf("year %d failed, error %q\n", job.Year, err)
			continue
		}
		log.Printf("year %d done, %d records stored at %s\n", outcome.Year, outcome.Records, outcome.StoredAt)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func parseSummary(job Job) ([]*report.Constituency, error) {
	switch job.Format {
	case FormatXLSX:
		sheets, err := source.OpenXLSX(job.SummaryPath)
		if err != nil {
			return nil, err
		}
		return summary.ParseGrid(sheets), nil
	case FormatText:
		sheets, err := source.OpenText(job.SummaryPath)
		if err != nil {
			return nil, err
		}
		return summary.ParseText(sheets), nil
	}
	return nil, fmt.Errorf("unknown report format %s for year %d", job.Format, job.Year)
}

func parseDetailed(job Job, idx *detailed.Index) (*detailed.Extraction, error) {
	switch job.Format {
	case FormatXLSX:
		sheets, err := source.OpenXLSX(job.DetailedPath)
		if err != nil {
			return nil, err
		}
		if len(sheets) == 0 {
			return nil, fmt.Errorf("detailed workbook %s has no sheets", job.DetailedPath)
		}
		return detailed.ParseGrid(sheets[0], job.Year, idx), nil
	case FormatText:
		sheets, err := source.OpenText(job.DetailedPath)
		if err != nil {
			return nil, err
		}
		return detailed.ParseText(sheets, idx), nil
	}
	return nil, fmt.Errorf("unknown report format %s for year %d", job.Format, job.Year)
}
