package merge

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sansad-info/parsers/report"
)

func record(id, name, state string) *report.Constituency {
	rec := report.New(id)
	rec.Name = name
	rec.StateUT = state
	return rec
}

func TestMerge(t *testing.T) {
	years := map[string][]*report.Constituency{
		"2019": {record("S01-1", "Test", "Andhra Pradesh")},
		"2024": {
			record("S01-1", "Test", "Andhra Pradesh"),
			record("S01-2", "Karimnagar", "Andhra Pradesh"),
		},
	}
	entries, err := Merge(years, "2024")
	if err != nil {
		t.Fatalf("expected err nil when merging, got %q", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries keyed by the latest year, got %d", len(entries))
	}
	if len(entries[0].Years) != 2 {
		t.Errorf("want S01-1 present in both years, got %d", len(entries[0].Years))
	}
	if len(entries[1].Years) != 1 {
		t.Errorf("want S01-2 present only in 2024, got %d", len(entries[1].Years))
	}

	if _, err := Merge(years, "2029"); err == nil {
		t.Errorf("expected an error for a latest year that was never loaded, got nil")
	}
}

func TestEntryMarshalJSON(t *testing.T) {
	years := map[string][]*report.Constituency{
		"2024": {record("S01-1", "Test", "Andhra Pradesh")},
	}
	entries, err := Merge(years, "2024")
	if err != nil {
		t.Fatalf("expected err nil when merging, got %q", err)
	}
	b, err := json.Marshal(entries[0])
	if err != nil {
		t.Fatalf("expected err nil when marshalling an entry, got %q", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("expected err nil when unmarshalling the entry, got %q", err)
	}
	if out["ID"] != "S01-1" || out["State_UT"] != "Andhra Pradesh" {
		t.Errorf("want identity fields at the top level, got %v", out)
	}
	year, ok := out["2024"].(map[string]interface{})
	if !ok {
		t.Fatalf("want the year as a top-level key, got %v", out)
	}
	if _, redundant := year["ID"]; redundant {
		t.Errorf("want the ID stripped from the year object, got %v", year)
	}
	if _, hasVotes := year["Votes"]; !hasVotes {
		t.Errorf("want the record body kept inside the year object, got %v", year)
	}
}

func TestPartyAbbreviation(t *testing.T) {
	testCases := []struct {
		name  string
		party string
		want  string
	}{
		{"Testing a known abbreviation", "Bharatiya Janata Party", "BJP"},
		{"Testing a known abbreviation with parentheses", "Janata Dal (United)", "JDU"},
		{"Testing the independent marker", "INDEPENDENT", "IND"},
		{"Testing the initials fallback", "Lok Jan Shakti Party", "LJSP"},
		{"Testing that short words are skipped", "Janata Dal of India", "JDI"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := PartyAbbreviation(tt.party); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNormalizeParties(t *testing.T) {
	rec := record("S01-1", "Test", "Andhra Pradesh")
	winner := "Bharatiya Janata Party"
	runnerUp := "Some Unknown Outfit"
	rec.Result.Winner.Party = &winner
	rec.Result.RunnerUp.Party = &runnerUp

	NormalizeParties([]*report.Constituency{rec})

	if *rec.Result.Winner.Party != "BJP" {
		t.Errorf("want winner party shortened to BJP, got %s", *rec.Result.Winner.Party)
	}
	if *rec.Result.RunnerUp.Party != "SUO" {
		t.Errorf("want runner-up party shortened to SUO, got %s", *rec.Result.RunnerUp.Party)
	}
}

func TestWriteCandidatesCSV(t *testing.T) {
	rec := record("S01-1", "Test", "Andhra Pradesh")
	rec.Candidates = []*report.Candidate{
		{
			Name:         "ALPHA KUMAR",
			Gender:       "MALE",
			Age:          52,
			Category:     "GEN",
			PartyName:    "Bharatiya Janata Party",
			VotesSecured: report.VotesSecured{General: 500000, Postal: 1000, Total: 501000},
		},
	}
	var buf bytes.Buffer
	if err := WriteCandidatesCSV(map[string][]*report.Constituency{"2019": {rec}}, &buf); err != nil {
		t.Fatalf("expected err nil when writing the csv, got %q", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "year,id,state_ut,constituency,candidate") {
		t.Errorf("want the csv header first, got %s", out)
	}
	if !strings.Contains(out, "2019,S01-1,Andhra Pradesh,Test,ALPHA KUMAR,MALE,52,GEN,Bharatiya Janata Party,BJP,501000,500000,1000") {
		t.Errorf("want the flattened candidate row, got %s", out)
	}
}
