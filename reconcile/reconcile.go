// Package reconcile joins the candidate rows extracted from the
// detailed report onto the summary records and settles every figure the
// two sources state at different quality: constituency totals are
// backfilled, missing vote shares derived and the result block is
// recomputed from the candidate list rather than trusted from the
// summary page.
package reconcile

import (
	"math"
	"sort"

	"github.com/sansad-info/parsers/detailed"
	"github.com/sansad-info/parsers/report"
)

// Diagnostics is the observable outcome of one reconciliation run. It
// travels with the output so a batch over twenty years of reports can
// be audited without re-reading logs.
type Diagnostics struct {
	MergedCandidates   int      `json:"merged_candidates"`
	NoCandidateIDs     []string `json:"no_candidate_ids,omitempty"`
	TiedConstituencies []string `json:"tied_constituencies,omitempty"`
	UnresolvedRows     int      `json:"unresolved_rows,omitempty"`
	UnresolvedSamples  []string `json:"unresolved_samples,omitempty"`
	FuzzyResolved      []string `json:"fuzzy_resolved,omitempty"`
}

// Run reconciles every record in place and reports what it did. The
// record order is preserved; only each record's candidate list is
// reordered, descending by total votes with the source order breaking
// ties.
func Run(records []*report.Constituency, ext *detailed.Extraction) *Diagnostics {
	diag := &Diagnostics{
		UnresolvedRows:    ext.UnresolvedRows,
		UnresolvedSamples: ext.UnresolvedSamples,
		FuzzyResolved:     ext.FuzzyResolved,
	}
	for _, rec := range records {
		candidates := ext.Candidates[rec.ID]
		diag.MergedCandidates += len(candidates)
		if len(candidates) > 0 {
			rec.Candidates = candidates
		}
		backfillTotals(rec, ext.PctValidSupplied)
		sort.SliceStable(rec.Candidates, func(i, j int) bool {
			return rec.Candidates[i].VotesSecured.Total > rec.Candidates[j].VotesSecured.Total
		})
		settleResult(rec, diag)
	}
	return diag
}

// backfillTotals copies the summary's constituency totals onto every
// candidate that did not get them from the detailed report, then
// derives the share over valid votes when the report had no column for
// it. A share the source stated is kept as stated.
func backfillTotals(rec *report.Constituency, pctSupplied bool) {
	votersTotal := 0
	if v, ok := rec.Voters[report.SubTotal]; ok && v != nil {
		votersTotal = int(v.Total)
	}
	electorsTotal := 0
	if e, ok := rec.Electors[report.SubTotal]; ok && e != nil {
		electorsTotal = int(e.Total)
	}
	validVotes := rec.Votes[report.VotesTotalValid]

	for _, c := range rec.Candidates {
		if c.TotalVotesPolled == 0 {
			c.TotalVotesPolled = votersTotal
		}
		if c.ValidVotes == 0 {
			c.ValidVotes = validVotes
		}
		if c.TotalElectors == 0 {
			c.TotalElectors = electorsTotal
		}
		if !pctSupplied {
			c.OverTotalValid = share(c.VotesSecured.Total, c.ValidVotes)
		}
	}
}

// settleResult recomputes winner, runner-up and margin from the sorted
// candidate list. A single-candidate constituency keeps the default
// runner-up and takes the winner's full tally as margin; a tie on the
// top two is legal output but worth flagging, because the stable sort
// then decides the winner by source order.
func settleResult(rec *report.Constituency, diag *Diagnostics) {
	if len(rec.Candidates) == 0 {
		diag.NoCandidateIDs = append(diag.NoCandidateIDs, rec.ID)
		return
	}
	winner := rec.Candidates[0]
	rec.Result.Winner = resultEntry(winner)
	if len(rec.Candidates) == 1 {
		rec.Result.Margin = winner.VotesSecured.Total
		return
	}
	runnerUp := rec.Candidates[1]
	rec.Result.RunnerUp = resultEntry(runnerUp)
	rec.Result.Margin = winner.VotesSecured.Total - runnerUp.VotesSecured.Total
	if rec.Result.Margin == 0 {
		diag.TiedConstituencies = append(diag.TiedConstituencies, rec.ID)
	}
}

func resultEntry(c *report.Candidate) report.ResultEntry {
	party := c.PartyName
	name := c.Name
	return report.ResultEntry{
		Party:      &party,
		Candidates: &name,
		Votes:      c.VotesSecured.Total,
	}
}

func share(votes, valid int) float64 {
	if valid == 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(valid)*100*100) / 100
}
