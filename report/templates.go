package report

// Keys of the Votes map. Every record carries all ten, zeroed when the
// year's report does not state them.
const (
	VotesPolledOnEVM    = "Total Votes Polled On EVM"
	VotesDeductedEVM    = "Total Deducted Votes From EVM"
	VotesValidEVM       = "Total Valid Votes polled on EVM"
	VotesPostalCounted  = "Postal Votes Counted"
	VotesPostalDeducted = "Postal Votes Deducted"
	VotesPostalValid    = "Valid Postal Votes"
	VotesTotalValid     = "Total Valid Votes Polled"
	VotesTestEVM        = "Test Votes polled On EVM"
	VotesNOTA           = "Votes Polled for 'NOTA'(Including Postal)"
	VotesTendered       = "Tendered Votes"
)

// Keys shared by the Electors and Voters maps.
const (
	SubGeneral        = "General"
	SubOverseas       = "OverSeas"
	SubService        = "Service"
	SubProxy          = "Proxy"
	SubPostal         = "Postal"
	SubTotal          = "Total"
	SubNotCounted     = "Votes Not Counted From CU(s) as Per ECI Instructions"
	SubPollingPercent = "POLLING PERCENTAGE"
)

// NewGenderCount returns a zeroed tally with all gender fields present.
func NewGenderCount() *GenderCount {
	zero := func() *int { v := 0; return &v }
	return &GenderCount{Men: zero(), Women: zero(), ThirdGender: zero(), Total: 0}
}

// newPollingPercentage returns the percentage row shape, whose gender
// fields are null on every year.
func newPollingPercentage() *GenderCount {
	return &GenderCount{Men: nil, Women: nil, ThirdGender: nil, Total: 0.0}
}

func newElectors() map[string]*GenderCount {
	return map[string]*GenderCount{
		SubGeneral:  NewGenderCount(),
		SubOverseas: NewGenderCount(),
		SubService:  NewGenderCount(),
		SubTotal:    NewGenderCount(),
	}
}

func newVoters() map[string]*GenderCount {
	return map[string]*GenderCount{
		SubGeneral:        NewGenderCount(),
		SubOverseas:       NewGenderCount(),
		SubProxy:          NewGenderCount(),
		SubPostal:         NewGenderCount(),
		SubTotal:          NewGenderCount(),
		SubNotCounted:     NewGenderCount(),
		SubPollingPercent: newPollingPercentage(),
	}
}

func newVotes() map[string]int {
	return map[string]int{
		VotesPolledOnEVM:    0,
		VotesDeductedEVM:    0,
		VotesValidEVM:       0,
		VotesPostalCounted:  0,
		VotesPostalDeducted: 0,
		VotesPostalValid:    0,
		VotesTotalValid:     0,
		VotesTestEVM:        0,
		VotesNOTA:           0,
		VotesTendered:       0,
	}
}

// New returns a fully templated constituency record. Sections the
// source never fills stay at these defaults, so a record is always
// serializable whatever the report omitted.
func New(id string) *Constituency {
	return &Constituency{
		ID:             id,
		Category:       "GENERAL",
		Candidates:     []*Candidate{},
		Electors:       newElectors(),
		Voters:         newVoters(),
		Votes:          newVotes(),
		PollingStation: PollingStation{},
		Dates:          []string{},
		Result: Result{
			Winner:   ResultEntry{Votes: 0},
			RunnerUp: ResultEntry{Votes: 0},
		},
		CandidateStats: map[string]*GenderCount{},
	}
}

// SetCounts fills a gender tally from already coerced values.
func (g *GenderCount) SetCounts(men, women, thirdGender, total int) {
	g.Men = &men
	g.Women = &women
	g.ThirdGender = &thirdGender
	g.Total = float64(total)
}
