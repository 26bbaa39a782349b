package merge

import (
	"fmt"
	"io"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/sansad-info/parsers/report"
)

// candidateRow is one line of the flat per-candidate CSV.
type candidateRow struct {
	Year         string  `csv:"year"`
	ID           string  `csv:"id"`
	StateUT      string  `csv:"state_ut"`
	Constituency string  `csv:"constituency"`
	Candidate    string  `csv:"candidate"`
	Gender       string  `csv:"gender"`
	Age          int     `csv:"age"`
	Category     string  `csv:"category"`
	Party        string  `csv:"party"`
	PartyAbbrev  string  `csv:"party_abbrev"`
	VotesTotal   int     `csv:"votes_total"`
	VotesGeneral int     `csv:"votes_general"`
	VotesPostal  int     `csv:"votes_postal"`
	PctValid     float64 `csv:"pct_over_valid_votes"`
	Rank         int     `csv:"rank"`
}

// WriteCandidatesCSV flattens every candidate of every merged year into
// CSV rows, ordered by year then record ID then rank.
func WriteCandidatesCSV(years map[string][]*report.Constituency, w io.Writer) error {
	orderedYears := make([]string, 0, len(years))
	for year := range years {
		orderedYears = append(orderedYears, year)
	}
	sort.Strings(orderedYears)

	var rows []*candidateRow
	for _, year := range orderedYears {
		for _, rec := range years[year] {
			for i, c := range rec.Candidates {
				rows = append(rows, &candidateRow{
					Year:         year,
					ID:           rec.ID,
					StateUT:      rec.StateUT,
					Constituency: rec.Name,
					Candidate:    c.Name,
					Gender:       c.Gender,
					Age:          c.Age,
					Category:     c.Category,
					Party:        c.PartyName,
					PartyAbbrev:  PartyAbbreviation(c.PartyName),
					VotesTotal:   c.VotesSecured.Total,
					VotesGeneral: c.VotesSecured.General,
					VotesPostal:  c.VotesSecured.Postal,
					PctValid:     c.OverTotalValid,
					Rank:         i + 1,
				})
			}
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to marshal candidate rows to csv, error %q", err)
	}
	return nil
}
