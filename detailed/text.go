package detailed

import (
	"regexp"
	"strings"

	"github.com/sansad-info/parsers/coerce"
	"github.com/sansad-info/parsers/names"
	"github.com/sansad-info/parsers/report"
	"github.com/sansad-info/parsers/source"
)

var (
	// A state header is a line that is nothing but a known state name.
	// Everything below it belongs to that state until the next header.
	constituencyRe        = regexp.MustCompile(`(?i)CONSTITUENCY\s*:\s*(\d+)?\s*\.?\s*([A-Za-z&\-\s]{3,}[^\(]*?)(?:\((ST|SC)\))?`)
	reverseConstituencyRe = regexp.MustCompile(`(?i)([A-Za-z&\-\s]{3,})\s+CONSTITUENCY\s*:`)
	totalElectorsRe       = regexp.MustCompile(`(?i)\(Total Electors\s*([\d,]+)\)`)

	// The gender-age-category triple is the only stable anchor inside a
	// candidate line; the name sits before it and the party plus the
	// numeric columns after it.
	candidateAnchorRe = regexp.MustCompile(`(?i)([MF])\s+(\d+)\s+([A-Z]{2,3})`)
	serialNameRe      = regexp.MustCompile(`^\s*(\d+)\s+(.+?)\s*$`)
	afterAnchorFullRe = regexp.MustCompile(`^\s*(.+?)\s+([\d,-]+)\s+([\d,-]+)\s+([\d,-]+)\s+([\d\.,-]+)\s+([\d\.,-]+)\s*$`)
	afterAnchorBareRe = regexp.MustCompile(`^\s*(.+?)\s+([\d,-]+)\s+([\d,-]+)\s+([\d,-]+)\s*$`)

	spacesRe = regexp.MustCompile(`\s+`)
)

// ParseText walks a text detailed report line by line, tracking the
// current state and constituency as headers go by and attributing every
// candidate line underneath to them. The pre-2014 text reports never
// state the share over valid votes, so PctValidSupplied stays false and
// the reconciler derives it.
func ParseText(sheets []source.Sheet, idx *Index) *Extraction {
	ext := newExtraction()
	aliases := stateAliases(idx)

	currentState := ""
	currentID := ""
	currentElectors := 0
	for _, sheet := range sheets {
		lines := sheet.Lines()
		for i, line := range lines {
			flat := spacesRe.ReplaceAllString(strings.TrimSpace(line), " ")
			if flat == "" {
				continue
			}
			if state, ok := aliases[strings.ToUpper(flat)]; ok {
				currentState = state
				currentID = ""
				currentElectors = 0
				continue
			}
			if name, ok := constituencyHeader(flat); ok {
				currentID = ""
				currentElectors = lookaheadElectors(lines, i)
				if currentState == "" || name == "" {
					ext.dropUnresolved(currentState, name)
					continue
				}
				id, kind := idx.Resolve(currentState, name)
				switch kind {
				case MatchNone:
					ext.dropUnresolved(currentState, name)
					continue
				case MatchPrefix:
					ext.noteFuzzy(currentState, name, id)
				}
				currentID = id
				continue
			}
			if c, ok := candidateLine(flat, currentElectors); ok {
				if currentID == "" {
					ext.dropUnresolved(currentState, "(no constituency header)")
					continue
				}
				ext.add(currentID, c)
			}
		}
	}
	return ext
}

// stateAliases maps every uppercase spelling a text report might use to
// the state name the index was built with.
func stateAliases(idx *Index) map[string]string {
	aliases := map[string]string{}
	for _, state := range idx.States() {
		aliases[state] = state
	}
	for alt, canonical := range names.TextStateAliases {
		if _, known := aliases[canonical]; known {
			aliases[alt] = canonical
		}
	}
	return aliases
}

func constituencyHeader(line string) (string, bool) {
	if m := constituencyRe.FindStringSubmatch(line); m != nil {
		return names.CleanPDFName(m[2]), true
	}
	if m := reverseConstituencyRe.FindStringSubmatch(line); m != nil {
		return names.CleanPDFName(m[1]), true
	}
	return "", false
}

// lookaheadElectors scans a few lines past a constituency header for
// the parenthesized electors figure, which sometimes wraps onto its own
// line.
func lookaheadElectors(lines []string, from int) int {
	for j := from; j <= from+3 && j < len(lines); j++ {
		if m := totalElectorsRe.FindStringSubmatch(lines[j]); m != nil {
			return coerce.Int(m[1])
		}
	}
	return 0
}

// candidateLine splits a line at the gender-age-category anchor. Lines
// without the anchor, or whose halves do not parse, are page furniture
// and reported as no match.
func candidateLine(line string, electors int) (*report.Candidate, bool) {
	loc := candidateAnchorRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil, false
	}
	anchor := candidateAnchorRe.FindStringSubmatch(line)
	before := line[:loc[0]]
	after := line[loc[1]:]

	sn := serialNameRe.FindStringSubmatch(before)
	if sn == nil {
		return nil, false
	}
	name := strings.TrimSpace(sn[2])
	if name == "" {
		return nil, false
	}

	c := &report.Candidate{
		Name:          name,
		Gender:        genderOf(anchor[1]),
		Age:           coerce.Int(anchor[2]),
		Category:      strings.ToUpper(anchor[3]),
		TotalElectors: electors,
	}
	if m := afterAnchorFullRe.FindStringSubmatch(after); m != nil {
		c.PartyName = strings.TrimSpace(m[1])
		c.VotesSecured = report.VotesSecured{
			General: coerce.Int(m[2]),
			Postal:  coerce.Int(m[3]),
			Total:   coerce.Int(m[4]),
		}
		c.VoteShare = report.VoteShare{
			OverTotalElectors:    round2(coerce.Float(m[5])),
			OverTotalVotesPolled: round2(coerce.Float(m[6])),
		}
		return c, true
	}
	if m := afterAnchorBareRe.FindStringSubmatch(after); m != nil {
		c.PartyName = strings.TrimSpace(m[1])
		c.VotesSecured = report.VotesSecured{
			General: coerce.Int(m[2]),
			Postal:  coerce.Int(m[3]),
			Total:   coerce.Int(m[4]),
		}
		return c, true
	}
	return nil, false
}
