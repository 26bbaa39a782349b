// Package report holds the canonical per-constituency record produced
// by one year's parsing run. The JSON field names on these structs are
// the file contract consumed by the merge and comparison tooling and
// must not change, even when the internal naming does.
package report

// GenderCount is one labeled tally split by gender. Men, Women and
// Third_Gender are pointers because some rows (the polling percentage
// one, and voter rows on years without a gender breakdown) legitimately
// carry null there; Total is a float so the same shape can hold the
// polling percentage.
type GenderCount struct {
	Men         *int    `json:"Men"`
	Women       *int    `json:"Women"`
	ThirdGender *int    `json:"Third_Gender"`
	Total       float64 `json:"Total"`
}

// VotesSecured is a candidate's vote count per channel. Total is the
// authoritative figure for ranking.
type VotesSecured struct {
	General int `json:"General"`
	Postal  int `json:"Postal"`
	Total   int `json:"Total"`
}

// VoteShare holds the two percentages the detailed reports state
// directly for every candidate.
type VoteShare struct {
	OverTotalElectors    float64 `json:"Over Total Electors In Constituency"`
	OverTotalVotesPolled float64 `json:"Over Total Votes Polled In Constituency"`
}

// Candidate is one row of the detailed report resolved to its
// constituency. Constituency-level totals are duplicated onto the
// candidate for flat-file convenience and backfilled during
// reconciliation when the detailed source did not state them.
type Candidate struct {
	Name              string       `json:"Candidate Name"`
	Gender            string       `json:"Gender"`
	Age               int          `json:"Age"`
	Category          string       `json:"Category"`
	PartyName         string       `json:"Party Name"`
	PartySymbol       *string      `json:"Party Symbol"`
	TotalVotesPolled  int          `json:"Total Votes Polled In The Constituency"`
	ValidVotes        int          `json:"Valid Votes"`
	VotesSecured      VotesSecured `json:"Votes Secured"`
	VoteShare         VoteShare    `json:"% of Votes Secured"`
	OverTotalValid    float64      `json:"Over Total Valid Votes Polled In Constituency"`
	TotalElectors     int          `json:"Total Electors"`
}

// ResultEntry is one line of the derived result block.
type ResultEntry struct {
	Party      *string `json:"Party"`
	Candidates *string `json:"Candidates"`
	Votes      int     `json:"Votes"`
}

// Result is always recomputed from the candidate list during
// reconciliation; the winner and runner-up stated on the summary source
// are unreliable and get overwritten.
type Result struct {
	Winner   ResultEntry `json:"Winner"`
	RunnerUp ResultEntry `json:"Runner-Up"`
	Margin   int         `json:"Margin"`
}

// PollingStation holds the two polling station metrics of the summary.
type PollingStation struct {
	Number          int `json:"Number"`
	AverageElectors int `json:"Average Electors Per Polling"`
}

// Constituency is the canonical record, one per constituency per year.
type Constituency struct {
	ID             string                  `json:"ID"`
	Name           string                  `json:"Constituency"`
	StateUT        string                  `json:"State_UT"`
	Category       string                  `json:"Category"`
	Candidates     []*Candidate            `json:"Candidates"`
	Electors       map[string]*GenderCount `json:"Electors"`
	Voters         map[string]*GenderCount `json:"Voters"`
	Votes          map[string]int          `json:"Votes"`
	PollingStation PollingStation          `json:"Polling_Station"`
	Dates          []string                `json:"Dates"`
	Result         Result                  `json:"Result"`

	// CandidateStats comes from the summary's candidate section
	// (nominated, contested...). It feeds nothing downstream and the
	// output files never carried it.
	CandidateStats map[string]*GenderCount `json:"-"`
}
