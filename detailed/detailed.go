// Package detailed extracts per-candidate rows from the "Constituency
// Wise Detailed Result" report and resolves every row to a constituency
// ID from the already-parsed summary. Resolution misses are the single
// largest source of data loss in this pipeline, so they are counted and
// sampled instead of silently dropped.
package detailed

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sansad-info/parsers/coerce"
	"github.com/sansad-info/parsers/names"
	"github.com/sansad-info/parsers/report"
	"github.com/sansad-info/parsers/source"
)

const (
	maxSamples      = 20
	minPrefixLength = 4
)

// MatchKind says how a row's identity was resolved.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchPrefix
)

// Index resolves a normalized (state, constituency) pair to a record
// ID. The pair must be injective within a year, otherwise two
// constituencies would swallow each other's candidates.
type Index struct {
	byState map[string]map[string]string
}

// NewIndex builds the lookup from a year's summary records. It returns
// an error when two records collide on the same normalized key, since
// every later resolution would silently misattribute candidates.
func NewIndex(records []*report.Constituency) (*Index, error) {
	idx := &Index{byState: map[string]map[string]string{}}
	for _, rec := range records {
		if rec.StateUT == "" || rec.Name == "" {
			continue
		}
		state := strings.ToLower(strings.TrimSpace(rec.StateUT))
		constituency := strings.ToLower(strings.TrimSpace(rec.Name))
		if idx.byState[state] == nil {
			idx.byState[state] = map[string]string{}
		}
		if existing, taken := idx.byState[state][constituency]; taken && existing != rec.ID {
			return nil, fmt.Errorf("constituencies %s and %s share the join key (%s, %s)", existing, rec.ID, state, constituency)
		}
		idx.byState[state][constituency] = rec.ID
	}
	return idx, nil
}

// States returns the uppercase state names known to the index.
func (x *Index) States() []string {
	states := make([]string, 0, len(x.byState))
	for s := range x.byState {
		states = append(states, strings.ToUpper(s))
	}
	sort.Strings(states)
	return states
}

// Resolve looks the pair up exactly first; only on a miss it tries a
// prefix match inside the same state, and only when a single
// constituency qualifies. Prefix hits are reported distinctly so the
// run diagnostics can surface them.
func (x *Index) Resolve(state, constituency string) (string, MatchKind) {
	stateKey := strings.ToLower(strings.TrimSpace(state))
	constKey := strings.ToLower(strings.TrimSpace(constituency))
	within, ok := x.byState[stateKey]
	if !ok || constKey == "" {
		return "", MatchNone
	}
	if id, ok := within[constKey]; ok {
		return id, MatchExact
	}
	if len(constKey) < minPrefixLength {
		return "", MatchNone
	}
	var hits []string
	for known := range within {
		if strings.HasPrefix(known, constKey) || strings.HasPrefix(constKey, known) {
			hits = append(hits, known)
		}
	}
	if len(hits) != 1 {
		return "", MatchNone
	}
	return within[hits[0]], MatchPrefix
}

// Extraction is the outcome of one detailed report pass: resolved
// candidates per record ID plus everything the reconciler and the run
// diagnostics need to know about the pass.
type Extraction struct {
	Candidates map[string][]*report.Candidate

	// PctValidSupplied is false when the report carried no "% over
	// total valid votes" column and the share must be derived.
	PctValidSupplied bool

	UnresolvedRows    int
	UnresolvedSamples []string
	FuzzyResolved     []string
}

func newExtraction() *Extraction {
	return &Extraction{Candidates: map[string][]*report.Candidate{}}
}

func (e *Extraction) add(id string, c *report.Candidate) {
	e.Candidates[id] = append(e.Candidates[id], c)
}

func (e *Extraction) dropUnresolved(state, constituency string) {
	e.UnresolvedRows++
	if len(e.UnresolvedSamples) < maxSamples {
		e.UnresolvedSamples = append(e.UnresolvedSamples, fmt.Sprintf("%s / %s", state, constituency))
	}
}

func (e *Extraction) noteFuzzy(state, constituency, id string) {
	if len(e.FuzzyResolved) < maxSamples {
		e.FuzzyResolved = append(e.FuzzyResolved, fmt.Sprintf("%s / %s -> %s", state, constituency, id))
	}
}

// columns is the field-to-column map inferred from the two stacked
// header rows. Absent columns stay -1 and read as empty cells.
type columns struct {
	name, gender, age, category      int
	partyName, partySymbol           int
	totalVotesPolled, validVotes     int
	general, postal, total           int
	pctElectors, pctPolled, pctValid int
	totalElectors                    int
}

// inferColumns matches the header text by keyword rather than exactly,
// because the wording drifts between years. Blank level-one cells
// inherit the nearest preceding label (merged header cells come out of
// the reader blank).
func inferColumns(level1, level2 []string) columns {
	cols := columns{
		name: -1, gender: -1, age: -1, category: -1,
		partyName: -1, partySymbol: -1,
		totalVotesPolled: -1, validVotes: -1,
		general: -1, postal: -1, total: -1,
		pctElectors: -1, pctPolled: -1, pctValid: -1,
		totalElectors: -1,
	}
	l1 := normalizeHeader(level1)
	l2 := normalizeHeader(level2)
	forwardFill(l1)
	for i := range l2 {
		one := ""
		if i < len(l1) {
			one = l1[i]
		}
		two := l2[i]
		switch {
		// Pre-2019 sheets label the name column only on the top header
		// row, with a merged blank cell underneath.
		case strings.Contains(two, "candidate") && strings.Contains(two, "name"),
			two == "" && strings.Contains(one, "candidate") && strings.Contains(one, "name"):
			cols.name = i
		case two == "sex" || two == "gender":
			cols.gender = i
		case two == "age":
			cols.age = i
		case two == "category":
			cols.category = i
		case strings.Contains(two, "party name"):
			cols.partyName = i
		case strings.Contains(two, "party symbol"):
			cols.partySymbol = i
		case two == "total votes polled in the constituency":
			cols.totalVotesPolled = i
		case two == "valid votes":
			cols.validVotes = i
		case strings.Contains(one, "votes secured") && !strings.Contains(one, "%") && two == "general":
			cols.general = i
		case strings.Contains(one, "votes secured") && !strings.Contains(one, "%") && two == "postal":
			cols.postal = i
		case strings.Contains(one, "votes secured") && !strings.Contains(one, "%") && two == "total":
			cols.total = i
		case strings.Contains(one, "% of votes secured") && strings.Contains(two, "over total electors"):
			cols.pctElectors = i
		case strings.Contains(one, "% of votes secured") && strings.Contains(two, "over total votes polled"):
			cols.pctPolled = i
		case strings.Contains(one, "% of votes secured") && strings.Contains(two, "over total valid votes"):
			cols.pctValid = i
		case strings.Contains(one, "total electors") || strings.Contains(two, "total electors"):
			cols.totalElectors = i
		}
	}
	return cols
}

func normalizeHeader(row []string) []string {
	out := make([]string, len(row))
	for i, h := range row {
		out[i] = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(coerce.Clean(h), "\n", " ")))
	}
	return out
}

func forwardFill(labels []string) {
	last := ""
	for i, l := range labels {
		if l != "" {
			last = l
		} else {
			labels[i] = last
		}
	}
}

// ParseGrid walks the single data sheet of a tabular detailed report.
// Pre-2019 revisions have no title row, which shifts the two header
// rows and the first data row up by one.
func ParseGrid(sheet source.Sheet, year int, idx *Index) *Extraction {
	ext := newExtraction()
	headerRow, dataRow := 1, 3
	if year <= 2014 {
		headerRow, dataRow = 0, 2
	}
	rows := sheet.Rows
	if len(rows) <= headerRow+1 {
		return ext
	}
	cols := inferColumns(rows[headerRow], rows[headerRow+1])
	ext.PctValidSupplied = cols.pctValid >= 0
	if cols.name < 0 {
		return ext
	}

	currentState := ""
	for i := dataRow; i < len(rows); i++ {
		row := rows[i]
		cellOne := coerce.Clean(source.Cell(row, 0))
		lower := strings.ToLower(cellOne)
		if lower == "state name" || lower == "total" {
			continue
		}
		if cellOne != "" && !strings.HasPrefix(cellOne, "=") {
			currentState = gridState(cellOne)
		}
		if currentState == "" || coerce.Clean(source.Cell(row, cols.name)) == "" {
			continue
		}
		constituency := names.Constituency(coerce.Clean(source.Cell(row, 1)))
		if constituency == "" || constituency == "Unknown" {
			continue
		}
		id, kind := idx.Resolve(currentState, constituency)
		switch kind {
		case MatchNone:
			ext.dropUnresolved(currentState, constituency)
			continue
		case MatchPrefix:
			ext.noteFuzzy(currentState, constituency, id)
		}
		ext.add(id, gridCandidate(row, cols))
	}
	return ext
}

// gridState folds a raw state cell onto the spelling the summary side
// produced for the same state.
func gridState(raw string) string {
	state := names.State(raw)
	if alias, ok := names.GridStateAliases[strings.ToUpper(state)]; ok {
		return alias
	}
	return state
}

func gridCandidate(row []string, cols columns) *report.Candidate {
	pctValid := 0.0
	if cols.pctValid >= 0 {
		pctValid = round2(coerce.Float(source.Cell(row, cols.pctValid)))
	}
	return &report.Candidate{
		Name:             coerce.Clean(source.Cell(row, cols.name)),
		Gender:           genderOf(source.Cell(row, cols.gender)),
		Age:              coerce.Int(source.Cell(row, cols.age)),
		Category:         strings.ToUpper(coerce.Clean(source.Cell(row, cols.category))),
		PartyName:        coerce.Clean(source.Cell(row, cols.partyName)),
		PartySymbol:      symbolOf(source.Cell(row, cols.partySymbol)),
		TotalVotesPolled: coerce.Int(source.Cell(row, cols.totalVotesPolled)),
		ValidVotes:       coerce.Int(source.Cell(row, cols.validVotes)),
		VotesSecured: report.VotesSecured{
			General: coerce.Int(source.Cell(row, cols.general)),
			Postal:  coerce.Int(source.Cell(row, cols.postal)),
			Total:   coerce.Int(source.Cell(row, cols.total)),
		},
		VoteShare: report.VoteShare{
			OverTotalElectors:    round2(coerce.Float(source.Cell(row, cols.pctElectors))),
			OverTotalVotesPolled: round2(coerce.Float(source.Cell(row, cols.pctPolled))),
		},
		OverTotalValid: pctValid,
		TotalElectors:  coerce.Int(source.Cell(row, cols.totalElectors)),
	}
}

func genderOf(raw string) string {
	g := strings.ToUpper(coerce.Clean(raw))
	switch g {
	case "M":
		return "MALE"
	case "F":
		return "FEMALE"
	}
	return g
}

func symbolOf(raw string) *string {
	s := coerce.Clean(raw)
	if s == "" {
		return nil
	}
	return &s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
