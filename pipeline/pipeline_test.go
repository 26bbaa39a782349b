package pipeline

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/sansad-info/parsers/filestorage"
	"github.com/sansad-info/parsers/report"
	"github.com/sansad-info/parsers/status"
)

const summaryText = `ELECTION COMMISSION CONSTITUENCY DATA - SUMMARY
State/UT : S01 Constituency : TEST (SC) No. : 1
I. CANDIDATES MEN WOMEN TOTAL
1. NOMINATED 12 2 14
4. CONTESTED 10 2 12
II. ELECTORS
1. GENERAL 500000 490000 990000
2. SERVICE 5000 5000 10000
3. TOTAL 505000 495000 1000000
III. VOTERS
1. GENERAL 450000 440000 890000
2. PROXY 100
3. POSTAL 9900
4. TOTAL 900000
III(A). POLLING PERCENTAGE 90.00
IV. VOTES
1. REJECTED VOTES (POSTAL) 900
2. VOTES NOT RETREIVED FROM EVM 19100
3. TOTAL VALID VOTES POLLED 880000
4.  TENDERED VOTES 25
V. POLLING STATIONS
NUMBER 1800
AVERAGE ELECTORS PER POLLING STATION 555
VI. DATES
POLLING 16-Apr-2009
DECLARATION 16-May-2009`

const detailedText = `ANDHRA PRADESH

CONSTITUENCY : 1 . TEST (SC) (Total Electors 1,000,000)
1 ALPHA KUMAR M 52 GEN Party One 500000 1000 501000 50.10 55.66
2 BETA DEVI F 45 GEN Party Two 380000 500 380500 38.05 42.27`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summary-2009.txt")
	detailedPath := filepath.Join(dir, "detailed-2009.txt")
	if err := ioutil.WriteFile(summaryPath, []byte(summaryText), 0644); err != nil {
		t.Fatalf("expected err nil when writing the summary fixture, got %q", err)
	}
	if err := ioutil.WriteFile(detailedPath, []byte(detailedText), 0644); err != nil {
		t.Fatalf("expected err nil when writing the detailed fixture, got %q", err)
	}

	bucket := filepath.Join(dir, "out")
	job := Job{
		Year:         2009,
		Format:       FormatText,
		SummaryPath:  summaryPath,
		DetailedPath: detailedPath,
		OutputName:   "general-election-2009.json",
	}
	var phases []status.Status
	outcome, err := RunWithPhases(job, filestorage.NewLocalStorage(), bucket, func(s status.Status) {
		phases = append(phases, s)
	})
	if err != nil {
		t.Fatalf("expected err nil when running the job, got %q", err)
	}
	if len(phases) != 2 || phases[0] != status.Parsing || phases[1] != status.Reconciling {
		t.Errorf("want the parsing and reconciling phases reported in order, got %v", phases)
	}
	if outcome.Records != 1 {
		t.Errorf("want 1 record, got %d", outcome.Records)
	}
	if outcome.Diagnostics.MergedCandidates != 2 {
		t.Errorf("want 2 merged candidates, got %d", outcome.Diagnostics.MergedCandidates)
	}

	b, err := ioutil.ReadFile(outcome.StoredAt)
	if err != nil {
		t.Fatalf("expected err nil when reading the stored output, got %q", err)
	}
	var records []*report.Constituency
	if err := json.Unmarshal(b, &records); err != nil {
		t.Fatalf("expected err nil when unmarshalling the output, got %q", err)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record in the output file, got %d", len(records))
	}
	rec := records[0]
	if rec.ID != "S01-1" || rec.StateUT != "Andhra Pradesh" || rec.Name != "Test" {
		t.Errorf("want record S01-1 Andhra Pradesh/Test, got %s %s/%s", rec.ID, rec.StateUT, rec.Name)
	}
	if len(rec.Candidates) != 2 {
		t.Fatalf("want 2 candidates, got %d", len(rec.Candidates))
	}
	winner := rec.Candidates[0]
	if winner.Name != "ALPHA KUMAR" {
		t.Errorf("want ALPHA KUMAR ranked first, got %s", winner.Name)
	}
	if winner.TotalVotesPolled != 900000 || winner.ValidVotes != 880000 {
		t.Errorf("want totals backfilled to 900000/880000, got %d/%d", winner.TotalVotesPolled, winner.ValidVotes)
	}
	if winner.OverTotalValid != 56.93 {
		t.Errorf("want derived share 56.93, got %v", winner.OverTotalValid)
	}
	if rec.Result.Margin != 120500 {
		t.Errorf("want margin 120500, got %d", rec.Result.Margin)
	}
	if *rec.Result.Winner.Party != "Party One" {
		t.Errorf("want winning party Party One, got %s", *rec.Result.Winner.Party)
	}
}

func TestRunUnknownFormat(t *testing.T) {
	_, err := Run(Job{Year: 1999, Format: "PDF"}, filestorage.NewLocalStorage(), "out")
	if err == nil {
		t.Errorf("expected an error for an unknown report format, got nil")
	}
}
