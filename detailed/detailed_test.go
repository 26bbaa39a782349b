package detailed

import (
	"strings"
	"testing"

	"github.com/sansad-info/parsers/report"
	"github.com/sansad-info/parsers/source"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex([]*report.Constituency{
		{ID: "S01-1", StateUT: "Andhra Pradesh", Name: "Test"},
		{ID: "S01-2", StateUT: "Andhra Pradesh", Name: "Karimnagar"},
		{ID: "U05-3", StateUT: "National Capital Territory of Delhi", Name: "Chandni Chowk"},
	})
	if err != nil {
		t.Fatalf("want a valid index, got error %q", err)
	}
	return idx
}

func TestNewIndexCollision(t *testing.T) {
	_, err := NewIndex([]*report.Constituency{
		{ID: "S01-1", StateUT: "Andhra Pradesh", Name: "Test"},
		{ID: "S01-9", StateUT: "Andhra Pradesh", Name: "Test"},
	})
	if err == nil {
		t.Errorf("want a collision error for two records sharing one join key, got nil")
	}
}

func TestResolve(t *testing.T) {
	idx := testIndex(t)
	testCases := []struct {
		name         string
		state        string
		constituency string
		wantID       string
		wantKind     MatchKind
	}{
		{"Testing an exact match", "Andhra Pradesh", "Test", "S01-1", MatchExact},
		{"Testing a case-folded match", "ANDHRA PRADESH", "KARIMNAGAR", "S01-2", MatchExact},
		{"Testing a prefix match on a truncated name", "Andhra Pradesh", "Karimnaga", "S01-2", MatchPrefix},
		{"Testing an unknown constituency", "Andhra Pradesh", "Ghost", "", MatchNone},
		{"Testing an unknown state", "Nowhere", "Test", "", MatchNone},
		{"Testing a too-short prefix", "Andhra Pradesh", "Kar", "", MatchNone},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			id, kind := idx.Resolve(tt.state, tt.constituency)
			if id != tt.wantID {
				t.Errorf("want id %s, got %s", tt.wantID, id)
			}
			if kind != tt.wantKind {
				t.Errorf("want match kind %d, got %d", tt.wantKind, kind)
			}
		})
	}
}

func TestResolveAmbiguousPrefix(t *testing.T) {
	idx, err := NewIndex([]*report.Constituency{
		{ID: "S10-1", StateUT: "Karnataka", Name: "Bangalore North"},
		{ID: "S10-2", StateUT: "Karnataka", Name: "Bangalore South"},
	})
	if err != nil {
		t.Fatalf("want a valid index, got error %q", err)
	}
	if id, kind := idx.Resolve("Karnataka", "Bangalore"); kind != MatchNone {
		t.Errorf("want no match for an ambiguous prefix, got id %s kind %d", id, kind)
	}
}

func gridRows() [][]string {
	return [][]string{
		{"Constituency Wise Detailed Result"},
		{"State Name", "PC Name", "Candidate Name", "", "", "", "Party Name", "Party Symbol", "Votes Secured", "", "", "% Of Votes Secured", "", "", "Total Electors", "", ""},
		{"", "", "Candidate Name", "Gender", "Age", "Category", "Party Name", "Party Symbol", "General", "Postal", "Total", "Over Total Electors In Constituency", "Over Total Votes Polled In Constituency", "Over Total Valid Votes Polled In Constituency", "Total Electors", "Total Votes Polled In The Constituency", "Valid Votes"},
		{"Andhra Pradesh", "1 - Test (SC)", "ALPHA KUMAR", "MALE", "52", "GEN", "Party One", "Lantern", "500000", "1000", "501000", "50.1", "55.66", "56.93", "1000000", "900000", "880000"},
		{"", "1 - Test (SC)", "BETA DEVI", "FEMALE", "45", "GEN", "Party Two", "", "380000", "500", "380500", "38.05", "42.27", "43.24", "1000000", "900000", "880000"},
		{"State Name", "PC Name", "Candidate Name"},
		{"Andhra Pradesh", "2 - Ghost", "GAMMA RAO", "MALE", "61", "GEN", "Party Three", "", "1", "0", "1", "0", "0", "0", "0", "0", "0"},
		{"Total", "", "", "", "", "", "", "", "880001", "1500", "881501"},
	}
}

func TestParseGrid(t *testing.T) {
	idx := testIndex(t)
	ext := ParseGrid(source.Sheet{Name: "Sheet1", Rows: gridRows()}, 2019, idx)

	if !ext.PctValidSupplied {
		t.Errorf("want PctValidSupplied true when the valid-votes share column exists, got false")
	}
	got := ext.Candidates["S01-1"]
	if len(got) != 2 {
		t.Fatalf("want 2 candidates for S01-1, got %d", len(got))
	}
	alpha := got[0]
	if alpha.Name != "ALPHA KUMAR" {
		t.Errorf("want candidate name ALPHA KUMAR, got %s", alpha.Name)
	}
	if alpha.Gender != "MALE" || alpha.Age != 52 || alpha.Category != "GEN" {
		t.Errorf("want MALE/52/GEN, got %s/%d/%s", alpha.Gender, alpha.Age, alpha.Category)
	}
	if alpha.PartyName != "Party One" {
		t.Errorf("want party Party One, got %s", alpha.PartyName)
	}
	if alpha.PartySymbol == nil || *alpha.PartySymbol != "Lantern" {
		t.Errorf("want party symbol Lantern, got %v", alpha.PartySymbol)
	}
	if alpha.VotesSecured.Total != 501000 || alpha.VotesSecured.General != 500000 || alpha.VotesSecured.Postal != 1000 {
		t.Errorf("want votes 500000/1000/501000, got %d/%d/%d", alpha.VotesSecured.General, alpha.VotesSecured.Postal, alpha.VotesSecured.Total)
	}
	if alpha.VoteShare.OverTotalElectors != 50.1 || alpha.VoteShare.OverTotalVotesPolled != 55.66 {
		t.Errorf("want shares 50.1/55.66, got %v/%v", alpha.VoteShare.OverTotalElectors, alpha.VoteShare.OverTotalVotesPolled)
	}
	if alpha.OverTotalValid != 56.93 {
		t.Errorf("want share over valid votes 56.93, got %v", alpha.OverTotalValid)
	}
	if alpha.TotalElectors != 1000000 || alpha.TotalVotesPolled != 900000 || alpha.ValidVotes != 880000 {
		t.Errorf("want totals 1000000/900000/880000, got %d/%d/%d", alpha.TotalElectors, alpha.TotalVotesPolled, alpha.ValidVotes)
	}

	beta := got[1]
	if beta.PartySymbol != nil {
		t.Errorf("want a nil party symbol for an empty cell, got %q", *beta.PartySymbol)
	}

	if ext.UnresolvedRows != 1 {
		t.Errorf("want 1 unresolved row, got %d", ext.UnresolvedRows)
	}
	if len(ext.UnresolvedSamples) != 1 || ext.UnresolvedSamples[0] != "Andhra Pradesh / Ghost" {
		t.Errorf("want unresolved sample Andhra Pradesh / Ghost, got %v", ext.UnresolvedSamples)
	}
}

func TestParseGridOldLayout(t *testing.T) {
	rows := [][]string{
		{"STATE", "CONSTITUENCY", "CANDIDATE NAME", "SEX", "AGE", "CATEGORY", "PARTY NAME", "VOTES SECURED", "", "", "% OF VOTES SECURED", ""},
		{"", "", "", "SEX", "AGE", "CATEGORY", "PARTY NAME", "GENERAL", "POSTAL", "TOTAL", "OVER TOTAL ELECTORS IN CONSTITUENCY", "OVER TOTAL VOTES POLLED IN CONSTITUENCY"},
		{"ORISSA", "7 - West", "DELTA SAHU", "M", "39", "sc", "Party Four", "210000", "300", "210300", "21.03", "24.45"},
	}
	records := []*report.Constituency{{ID: "S18-7", StateUT: "Odisha", Name: "West"}}
	odisha, err := NewIndex(records)
	if err != nil {
		t.Fatalf("want a valid index, got error %q", err)
	}
	ext := ParseGrid(source.Sheet{Name: "Sheet1", Rows: rows}, 2014, odisha)

	if ext.PctValidSupplied {
		t.Errorf("want PctValidSupplied false when the column is absent, got true")
	}
	got := ext.Candidates["S18-7"]
	if len(got) != 1 {
		t.Fatalf("want 1 candidate for S18-7, got %d (unresolved %v)", len(got), ext.UnresolvedSamples)
	}
	delta := got[0]
	if delta.Gender != "MALE" {
		t.Errorf("want gender M expanded to MALE, got %s", delta.Gender)
	}
	if delta.Category != "SC" {
		t.Errorf("want category upper-cased to SC, got %s", delta.Category)
	}
	if delta.PartySymbol != nil {
		t.Errorf("want a nil party symbol when the report has no symbol column, got %q", *delta.PartySymbol)
	}
	if delta.OverTotalValid != 0 {
		t.Errorf("want a zero valid-votes share pending derivation, got %v", delta.OverTotalValid)
	}
	if delta.VotesSecured.Total != 210300 {
		t.Errorf("want 210300 total votes, got %d", delta.VotesSecured.Total)
	}
}

const detailedPage = `ELECTION COMMISSION
DETAILED RESULTS

ANDHRA PRADESH

CONSTITUENCY : 1 . TEST (SC) (Total Electors 1,000,000)
SL. CANDIDATE SEX AGE CATEGORY PARTY GENERAL POSTAL TOTAL % ELECTORS % POLLED
1 ALPHA KUMAR M 52 GEN Party One 500000 1000 501000 50.10 55.66
2 BETA DEVI F 45 GEN Party Two 380000 500 380500 38.05 42.27

KARIMNAGA CONSTITUENCY : (Total Electors 900,000)
1 GAMMA RAO M 61 GEN Party Three 300000 200 300200

CONSTITUENCY : 9 . GHOSTVILLE
1 ORPHAN ROW M 40 GEN Party Four 10 0 10
Page 1 of 20
`

const delhiPage = `DELHI

CONSTITUENCY : 3 . CHANDNI CHOWK (Total Electors 1,200,000)
1 EPSILON SINGH F 48 GEN Party Five 400000 900 400900 33.41 40.00
`

func textSheets(pages ...string) []source.Sheet {
	var sheets []source.Sheet
	for _, page := range pages {
		var rows [][]string
		for _, line := range strings.Split(page, "\n") {
			rows = append(rows, []string{line})
		}
		sheets = append(sheets, source.Sheet{Name: "page", Rows: rows})
	}
	return sheets
}

func TestParseText(t *testing.T) {
	idx := testIndex(t)
	ext := ParseText(textSheets(detailedPage, delhiPage), idx)

	if ext.PctValidSupplied {
		t.Errorf("want PctValidSupplied false for text reports, got true")
	}

	test := ext.Candidates["S01-1"]
	if len(test) != 2 {
		t.Fatalf("want 2 candidates for S01-1, got %d (unresolved %v)", len(test), ext.UnresolvedSamples)
	}
	alpha := test[0]
	if alpha.Name != "ALPHA KUMAR" {
		t.Errorf("want candidate name ALPHA KUMAR, got %s", alpha.Name)
	}
	if alpha.Gender != "MALE" || alpha.Age != 52 || alpha.Category != "GEN" {
		t.Errorf("want MALE/52/GEN, got %s/%d/%s", alpha.Gender, alpha.Age, alpha.Category)
	}
	if alpha.PartyName != "Party One" {
		t.Errorf("want party Party One, got %s", alpha.PartyName)
	}
	if alpha.VotesSecured.Total != 501000 {
		t.Errorf("want 501000 total votes, got %d", alpha.VotesSecured.Total)
	}
	if alpha.VoteShare.OverTotalElectors != 50.1 || alpha.VoteShare.OverTotalVotesPolled != 55.66 {
		t.Errorf("want shares 50.1/55.66, got %v/%v", alpha.VoteShare.OverTotalElectors, alpha.VoteShare.OverTotalVotesPolled)
	}
	if alpha.TotalElectors != 1000000 {
		t.Errorf("want 1000000 electors from the header, got %d", alpha.TotalElectors)
	}

	karimnagar := ext.Candidates["S01-2"]
	if len(karimnagar) != 1 {
		t.Fatalf("want 1 candidate for S01-2 via the reversed header, got %d", len(karimnagar))
	}
	gamma := karimnagar[0]
	if gamma.VotesSecured.Total != 300200 || gamma.VoteShare.OverTotalElectors != 0 {
		t.Errorf("want a bare three-column row with 300200 votes and no shares, got %d/%v", gamma.VotesSecured.Total, gamma.VoteShare.OverTotalElectors)
	}
	if gamma.TotalElectors != 900000 {
		t.Errorf("want 900000 electors, got %d", gamma.TotalElectors)
	}
	if len(ext.FuzzyResolved) != 1 {
		t.Errorf("want the truncated Karimnaga header reported as a fuzzy match, got %v", ext.FuzzyResolved)
	}

	delhi := ext.Candidates["U05-3"]
	if len(delhi) != 1 {
		t.Fatalf("want 1 candidate for U05-3 via the DELHI alias, got %d", len(delhi))
	}

	// Ghostville has no summary record: its header and its one
	// candidate row both count as unresolved.
	if ext.UnresolvedRows != 2 {
		t.Errorf("want 2 unresolved rows, got %d (%v)", ext.UnresolvedRows, ext.UnresolvedSamples)
	}
}

// The 2009 summary side corrects Orissa to Odisha while the detailed
// pages still print ORISSA, so the join has to go through the alias.
func TestParseTextArchaicStateSpelling(t *testing.T) {
	const orissaPage = `ORISSA

CONSTITUENCY : 1 . BHUBANESWAR (Total Electors 800,000)
1 ZETA PATRA M 55 GEN Party Six 250000 400 250400
`
	idx, err := NewIndex([]*report.Constituency{
		{ID: "S18-1", StateUT: "Odisha", Name: "Bhubaneswar"},
	})
	if err != nil {
		t.Fatalf("want a valid index, got error %q", err)
	}
	ext := ParseText(textSheets(orissaPage), idx)

	got := ext.Candidates["S18-1"]
	if len(got) != 1 {
		t.Fatalf("want 1 candidate for S18-1, got %d (unresolved %d: %v)", len(got), ext.UnresolvedRows, ext.UnresolvedSamples)
	}
	if got[0].Name != "ZETA PATRA" || got[0].VotesSecured.Total != 250400 {
		t.Errorf("want ZETA PATRA with 250400 votes, got %s with %d", got[0].Name, got[0].VotesSecured.Total)
	}
	if ext.UnresolvedRows != 0 {
		t.Errorf("want 0 unresolved rows, got %d (%v)", ext.UnresolvedRows, ext.UnresolvedSamples)
	}
}
