package summary

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/sansad-info/parsers/coerce"
	"github.com/sansad-info/parsers/names"
	"github.com/sansad-info/parsers/report"
	"github.com/sansad-info/parsers/source"
)

// The pre-2014 summary reports only exist as text lifted from PDFs.
// tokenizePage turns one page of that text into rows shaped like the
// XLSX rows, so the same state machine consumes both formats; the only
// format-specific logic left over is the vote channel reconstruction in
// reconstructVoteChannels.

var (
	stateCodeRe  = regexp.MustCompile(`(?i)State/UT\s*:\s*([SU]\d+)`)
	stateNameRe  = regexp.MustCompile(`(?i)STATE/UT\s*:\s*([A-Z\s]+)`)
	codeLineRe   = regexp.MustCompile(`(?i)CODE\s*:\s*([SU]\d+)`)
	constRe      = regexp.MustCompile(`(?i)Constituency\s*:\s*([^\n\(]+)`)
	numberRe     = regexp.MustCompile(`(?i)No\.?\s*:\s*(\d+)`)
	pageCatRe    = regexp.MustCompile(`(?i)\((ST|SC)\)`)

	nominatedRe = regexp.MustCompile(`(?i)1\.\s*NOMINATED\s+([\d-]+)\s+([\d-]+)\s+([\d-]+)`)
	rejectedRe  = regexp.MustCompile(`(?i)2\.\s*NOMINATION REJECTED\s+([\d-]+)\s+([\d-]+)\s+([\d-]+)`)
	withdrawnRe = regexp.MustCompile(`(?i)3\.\s*WITHDRAWN\s+([\d-]+)\s+([\d-]+)\s+([\d-]+)`)
	contestedRe = regexp.MustCompile(`(?i)4\.\s*CONTESTED\s+([\d-]+)\s+([\d-]+)\s+([\d-]+)`)

	elecGeneralRe = regexp.MustCompile(`(?is)II\.\s*ELECTORS\s*1\.\s*GENERAL\s+([\d-]+)\s+([\d-]+)\s+([\d-]+)`)
	elecServiceRe = regexp.MustCompile(`(?i)2\.\s*SERVICE\s+([\d-]+)\s+([\d-]+)\s+([\d-]+)`)
	elecTotalRe   = regexp.MustCompile(`(?i)3\.\s*TOTAL\s+([\d-]+)\s+([\d-]+)\s+([\d-]+)`)

	votersGeneralRe = regexp.MustCompile(`(?is)III\.\s*VOTERS\s*1\.\s*GENERAL\s+([\d-]+)\s+([\d-]+)\s+([\d-]+)`)
	votersProxyRe   = regexp.MustCompile(`(?i)2\.\s*PROXY\s+([\d-]+)`)
	votersPostalRe  = regexp.MustCompile(`(?i)3\.\s*POSTAL\s+([\d-]+)`)
	votersTotalRe   = regexp.MustCompile(`(?i)4\.\s*TOTAL\s+([\d-]+)`)
	pollingPctRe    = regexp.MustCompile(`(?i)POLLING PERCENTAGE\s*:?\s*([\d\.]+)`)

	votesRejectedRe     = regexp.MustCompile(`(?i)REJECTED VOTES\s*\(POSTAL\)\s*([\d-]+)`)
	votesNotRetrievedRe = regexp.MustCompile(`(?i)VOTES NOT RETR[IE]+VED FROM EVM\s*([\d-]+)`)
	votesValidRe        = regexp.MustCompile(`(?i)TOTAL VALID VOTES POLLED\s*([\d-]+)`)
	votesTenderedRe     = regexp.MustCompile(`(?i)TENDERED VOTES\s*([\d-]+)`)

	psNumberRe = regexp.MustCompile(`(?is)POLLING STATIONS\s*NUMBER\s*:?\s*(\d+)`)
	psAvgRe    = regexp.MustCompile(`(?i)AVERAGE ELECTORS PER POLLING STATION\s*:?\s*(\d+)`)

	pollDateRe    = regexp.MustCompile(`(?i)POLLING\s+(\d{1,2})-([A-Za-z]{3})-(\d{4})`)
	declDateRe    = regexp.MustCompile(`(?i)DECLARATION\s+(\d{1,2})-([A-Za-z]{3})-(\d{4})`)
	pollNumDateRe = regexp.MustCompile(`(?i)POLLING\s+(\d{2})-(\d{2})-(\d{4})`)
	declNumDateRe = regexp.MustCompile(`(?i)DECLARATION\s+(\d{2})-(\d{2})-(\d{4})`)

	winnerRe   = regexp.MustCompile(`(?i)Winner\s+:\s+([A-Za-z]+)\s+([A-Za-z\s\.]+?)\s+(\d+)`)
	runnerUpRe = regexp.MustCompile(`(?i)Runner up\s+:\s+([A-Za-z]+)\s+([A-Za-z\s\.]+?)\s+(\d+)`)
	marginRe   = regexp.MustCompile(`(?i)MARGIN\s+:\s*\D*(\d+)`)
)

var monthNumber = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// ParseText extracts one record per report page. Pages that carry no
// recognizable constituency header (covers, legends, totals pages) are
// skipped.
func ParseText(sheets []source.Sheet) []*report.Constituency {
	var records []*report.Constituency
	for _, sheet := range sheets {
		text := strings.Join(sheet.Lines(), "\n")
		id, rows, rejectedPostal, ok := tokenizePage(text)
		if !ok {
			continue
		}
		rec := parseRows(id, rows)
		reconstructVoteChannels(rec, rejectedPostal)
		records = append(records, rec)
	}
	log.Printf("summary text report, pages parsed [%d]\n", len(records))
	return records
}

// tokenizePage builds machine-shaped rows from one page of report
// text. It also returns the rejected postal vote count, which has no
// counterpart among the canonical vote keys and is consumed by the
// post-pass instead.
func tokenizePage(text string) (string, [][]string, int, bool) {
	code := firstGroup(stateCodeRe, text)
	stateName := ""
	if code == "" {
		// 2004 layout spells the state name and code on separate lines.
		if m := stateNameRe.FindStringSubmatch(text); m != nil {
			stateName = strings.TrimSpace(m[1])
		}
		code = firstGroup(codeLineRe, text)
	}
	constRaw := strings.TrimSpace(firstGroup(constRe, text))
	number := firstGroup(numberRe, text)
	if code == "" || constRaw == "" || number == "" {
		return "", nil, 0, false
	}
	code = strings.ToUpper(code)
	if mapped, ok := names.CodeToState[code]; ok && stateName == "" {
		stateName = mapped
	}
	if stateName == "" {
		stateName = code
	}
	if cat := pageCatRe.FindStringSubmatch(text); cat != nil && !pageCatRe.MatchString(constRaw) {
		constRaw = fmt.Sprintf("%s (%s)", constRaw, strings.ToUpper(cat[1]))
	}

	rows := [][]string{
		{"State/UT", stateName, "", constRaw},
		{"CANDIDATES"},
		statsRow("Nominated", groups(nominatedRe, text, 3)),
		statsRow("Nomination Rejected", groups(rejectedRe, text, 3)),
		statsRow("Withdrawn", groups(withdrawnRe, text, 3)),
		statsRow("Contested", groups(contestedRe, text, 3)),
		{"ELECTORS"},
		statsRow(report.SubGeneral, groups(elecGeneralRe, text, 3)),
		statsRow(report.SubService, groups(elecServiceRe, text, 3)),
		statsRow(report.SubTotal, groups(elecTotalRe, text, 3)),
		{"VOTERS"},
		statsRow(report.SubGeneral, groups(votersGeneralRe, text, 3)),
		scalarQuadRow(report.SubProxy, firstGroup(votersProxyRe, text)),
		scalarQuadRow(report.SubPostal, firstGroup(votersPostalRe, text)),
		scalarQuadRow(report.SubTotal, firstGroup(votersTotalRe, text)),
		{"", report.SubPollingPercent, "", firstGroup(pollingPctRe, text)},
		{"VOTES"},
		scalarRow(report.VotesDeductedEVM, firstGroup(votesNotRetrievedRe, text)),
		scalarRow(report.VotesTotalValid, firstGroup(votesValidRe, text)),
		scalarRow(report.VotesTendered, firstGroup(votesTenderedRe, text)),
		{"POLLING STATION"},
		{"", "Number", "", firstGroup(psNumberRe, text)},
		{"", "Average Electors Per Polling Station", "", "", "", "", firstGroup(psAvgRe, text)},
	}

	if poll, decl := pageDates(text); poll != "" || decl != "" {
		rows = append(rows, []string{"DATES", "", "", poll, "", decl})
	}
	rows = append(rows, resultRows(text)...)

	id := fmt.Sprintf("%s-%s", code, number)
	return id, rows, coerce.Int(firstGroup(votesRejectedRe, text)), true
}

// reconstructVoteChannels rebuilds the EVM/postal split the canonical
// record expects out of the coarser counts the old reports state. The
// stated rejected count is distrusted when it disagrees with
// polled-minus-valid, and the split is clamped so no channel goes
// negative or exceeds its counted total.
func reconstructVoteChannels(rec *report.Constituency, rejectedPostal int) {
	totalPolled := int(rec.Voters[report.SubTotal].Total)
	postalCounted := int(rec.Voters[report.SubPostal].Total)
	totalValid := rec.Votes[report.VotesTotalValid]

	totalRejected := rejectedPostal
	if totalPolled-totalValid != totalRejected {
		totalRejected = totalPolled - totalValid
	}

	rec.Votes[report.VotesPostalCounted] = postalCounted
	rec.Votes[report.VotesPolledOnEVM] = totalPolled - postalCounted

	postalDeducted := totalRejected - rec.Votes[report.VotesDeductedEVM]
	if postalDeducted < 0 {
		postalDeducted = 0
	}
	if postalDeducted > postalCounted {
		rec.Votes[report.VotesDeductedEVM] = totalRejected
		rec.Votes[report.VotesPostalDeducted] = 0
	} else {
		rec.Votes[report.VotesPostalDeducted] = postalDeducted
	}

	rec.Votes[report.VotesPostalValid] = postalCounted - rec.Votes[report.VotesPostalDeducted]
	validEVM := rec.Votes[report.VotesPolledOnEVM] - rec.Votes[report.VotesDeductedEVM]
	if validEVM < 0 {
		validEVM = 0
	}
	if validEVM+rec.Votes[report.VotesPostalValid] != totalValid {
		validEVM = totalValid - rec.Votes[report.VotesPostalValid]
	}
	rec.Votes[report.VotesValidEVM] = validEVM
}

func pageDates(text string) (string, string) {
	poll := monthDate(pollDateRe.FindStringSubmatch(text))
	if poll == "" {
		poll = numericDate(pollNumDateRe.FindStringSubmatch(text))
	}
	decl := monthDate(declDateRe.FindStringSubmatch(text))
	if decl == "" {
		decl = numericDate(declNumDateRe.FindStringSubmatch(text))
	}
	return poll, decl
}

// monthDate converts "16-Apr-2009" captures to the dd/mm/yyyy shape
// the later reports use.
func monthDate(m []string) string {
	if m == nil {
		return ""
	}
	num, ok := monthNumber[strings.ToLower(m[2])]
	if !ok {
		return ""
	}
	day := m[1]
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s/%s/%s", day, num, m[3])
}

func numericDate(m []string) string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])
}

func resultRows(text string) [][]string {
	var rows [][]string
	win := winnerRe.FindStringSubmatch(text)
	run := runnerUpRe.FindStringSubmatch(text)
	margin := marginRe.FindStringSubmatch(text)
	if win == nil && run == nil && margin == nil {
		return nil
	}
	rows = append(rows, []string{"RESULT"})
	if win != nil {
		rows = append(rows, []string{"", "Winner", "", strings.TrimSpace(win[1]), names.Constituency(win[2]), "", win[3]})
	}
	if run != nil {
		rows = append(rows, []string{"", "Runner-Up", "", strings.TrimSpace(run[1]), names.Constituency(run[2]), "", run[3]})
	}
	if margin != nil {
		rows = append(rows, []string{"", "Margin", "", margin[1]})
	}
	return rows
}

func statsRow(label string, g []string) []string {
	return []string{"", label, "", g[0], g[1], "0", g[2]}
}

func scalarQuadRow(label, total string) []string {
	return []string{"", label, "", "0", "0", "0", total}
}

func scalarRow(label, value string) []string {
	return []string{"", label, "", "", "", "", value}
}

// groups returns n captured groups of the first match, or zeros when
// the pattern never matches, so a missing section degrades to the
// template defaults.
func groups(re *regexp.Regexp, text string, n int) []string {
	m := re.FindStringSubmatch(text)
	out := make([]string, n)
	for i := range out {
		out[i] = "0"
	}
	if m == nil {
		return out
	}
	for i := 0; i < n && i+1 < len(m); i++ {
		out[i] = strings.TrimSpace(m[i+1])
	}
	return out
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
