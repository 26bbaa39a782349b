// Package summary extracts one canonical constituency record from each
// page of the "Constituency Data Summary" report. A single label-driven
// state machine walks the rows of a page; the XLSX reports feed it
// their sheet rows directly and the text reports feed it rows built by
// the page tokenizer in text.go. Layouts moved around between 2014,
// 2019 and 2024 but the section labels did not, which is what makes one
// machine enough.
package summary

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sansad-info/parsers/coerce"
	"github.com/sansad-info/parsers/names"
	"github.com/sansad-info/parsers/report"
	"github.com/sansad-info/parsers/source"
)

type section int

const (
	sectionNone section = iota
	sectionStateHeader
	sectionCandidateStats
	sectionElectors
	sectionVoters
	sectionVotes
	sectionPollingStation
	sectionDates
	sectionResult
)

var categoryMarkerRe = regexp.MustCompile(`(?i)\((SC|ST)\)`)
var categorySuffixRe = regexp.MustCompile(`(?i)-(SC|ST)`)

// ParseGrid extracts one record per workbook sheet. The sheet title is
// the record ID on every XLSX revision.
func ParseGrid(sheets []source.Sheet) []*report.Constituency {
	records := make([]*report.Constituency, 0, len(sheets))
	for _, sheet := range sheets {
		records = append(records, parseRows(strings.TrimSpace(sheet.Name), sheet.Rows))
	}
	return records
}

// parseRows is the section state machine. A row whose leading cell
// matches a section label switches the state and is consumed; the
// State/UT and DATES rows additionally carry their payload inline.
// Rows that fit no rule are skipped, never fatal.
func parseRows(id string, rows [][]string) *report.Constituency {
	rec := report.New(id)
	current := sectionNone
	for i, row := range rows {
		if emptyRow(row) {
			continue
		}
		cellOne := coerce.Clean(source.Cell(row, 0))
		switch {
		case strings.Contains(cellOne, "State/UT"):
			current = sectionStateHeader
			stateName := strings.TrimSpace(strings.Split(coerce.Clean(source.Cell(row, 1)), "-")[0])
			rec.StateUT = names.State(stateName)
			constRaw := coerce.Clean(source.Cell(row, 3))
			rec.Category = categoryOf(constRaw)
			rec.Name = names.Constituency(constRaw)
		case strings.Contains(cellOne, "CANDIDATES"):
			current = sectionCandidateStats
		case strings.Contains(cellOne, "ELECTORS"):
			current = sectionElectors
		case strings.Contains(cellOne, "VOTERS"):
			current = sectionVoters
		case strings.Contains(cellOne, "VOTES"):
			current = sectionVotes
		case strings.Contains(cellOne, "POLLING STATION"):
			current = sectionPollingStation
		case strings.Contains(cellOne, "DATES"):
			current = sectionDates
			extractDates(rec, rows, i)
		case strings.Contains(cellOne, "RESULT"):
			current = sectionResult
		default:
			consumeSectionRow(rec, &current, row)
		}
	}
	rec.Dates = dedupeSorted(rec.Dates)
	return rec
}

func consumeSectionRow(rec *report.Constituency, current *section, row []string) {
	key := coerce.Clean(source.Cell(row, 1))
	switch *current {
	case sectionCandidateStats:
		if key != "" && len(row) > 6 {
			rec.CandidateStats[key] = quad(row)
		}
	case sectionElectors:
		if key != "" && len(row) > 6 {
			rec.Electors[key] = quad(row)
		}
	case sectionVoters:
		if key == "" {
			return
		}
		if strings.Contains(key, report.SubPollingPercent) {
			pct := coerce.Float(source.Cell(row, 3))
			if pct == 0.0 {
				pct = coerce.Float(source.Cell(row, 6))
			}
			rec.Voters[report.SubPollingPercent].Total = pct
			return
		}
		if _, known := rec.Voters[key]; known && len(row) > 6 {
			rec.Voters[key] = quad(row)
		}
	case sectionVotes:
		if _, known := rec.Votes[key]; known && key != "" && len(row) > 6 {
			rec.Votes[key] = coerce.Int(source.Cell(row, 6))
		}
	case sectionPollingStation:
		if key == "Number" {
			rec.PollingStation.Number = coerce.Int(source.Cell(row, 3))
		} else if strings.Contains(key, "Average Electors") {
			rec.PollingStation.AverageElectors = coerce.Int(source.Cell(row, 6))
			*current = sectionNone
		}
	case sectionResult:
		switch {
		case (key == "Winner" || key == "Runner-Up") && len(row) > 6:
			entry := report.ResultEntry{
				Party:      strptr(coerce.Clean(source.Cell(row, 3))),
				Candidates: strptr(coerce.Clean(source.Cell(row, 4))),
				Votes:      coerce.Int(source.Cell(row, 6)),
			}
			if key == "Winner" && rec.Result.Winner.Party == nil {
				rec.Result.Winner = entry
			} else if key == "Runner-Up" && rec.Result.RunnerUp.Party == nil {
				rec.Result.RunnerUp = entry
			}
		case key == "Margin":
			rec.Result.Margin = coerce.Int(source.Cell(row, 3))
			*current = sectionNone
		}
	}
}

// extractDates scans a handful of rows below the DATES heading for the
// first one whose cells look like dates; the heading row itself often
// is that row.
func extractDates(rec *report.Constituency, rows [][]string, from int) {
	var dateRow []string
	for j := from; j < from+5 && j < len(rows); j++ {
		if strings.Contains(coerce.Clean(source.Cell(rows[j], 3)), "/") ||
			strings.Contains(coerce.Clean(source.Cell(rows[j], 5)), "/") {
			dateRow = rows[j]
			break
		}
	}
	if dateRow == nil {
		return
	}
	poll := coerce.Clean(source.Cell(dateRow, 3))
	if strings.Contains(poll, "/") && !strings.Contains(strings.ToLower(poll), "polling") {
		rec.Dates = append(rec.Dates, poll)
	}
	pollAlt := coerce.Clean(source.Cell(dateRow, 4))
	if strings.Contains(pollAlt, "/") && !strings.Contains(strings.ToLower(pollAlt), "polling") && !contains(rec.Dates, pollAlt) {
		rec.Dates = append(rec.Dates, pollAlt)
	}
	decl := coerce.Clean(source.Cell(dateRow, 5))
	if strings.Contains(decl, "/") && !strings.Contains(strings.ToLower(decl), "declaration") {
		rec.Dates = append(rec.Dates, decl)
	}
}

func categoryOf(constRaw string) string {
	if m := categoryMarkerRe.FindStringSubmatch(constRaw); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := categorySuffixRe.FindStringSubmatch(constRaw); m != nil {
		return strings.ToUpper(m[1])
	}
	return "GENERAL"
}

// quad reads the fixed Men/Women/Third_Gender/Total column positions.
func quad(row []string) *report.GenderCount {
	g := report.NewGenderCount()
	g.SetCounts(
		coerce.Int(source.Cell(row, 3)),
		coerce.Int(source.Cell(row, 4)),
		coerce.Int(source.Cell(row, 5)),
		coerce.Int(source.Cell(row, 6)),
	)
	return g
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func dedupeSorted(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func strptr(s string) *string {
	return &s
}
