package merge

import (
	"regexp"
	"strings"

	"github.com/sansad-info/parsers/report"
)

// Known major party abbreviations. Anything not listed falls back to
// an abbreviation built from the name's initials.
var partyAbbreviations = map[string]string{
	"Bharatiya Janata Party":                   "BJP",
	"Indian National Congress":                 "INC",
	"Aam Aadmi Party":                          "AAP",
	"Bahujan Samaj Party":                      "BSP",
	"Communist Party of India":                 "CPI",
	"Communist Party of India (Marxist)":       "CPM",
	"All India Trinamool Congress":             "AITC",
	"Nationalist Congress Party":               "NCP",
	"Yuvajana Sramika Rythu Congress Party":    "YSRCP",
	"Bharat Rashtra Samithi":                   "BRS",
	"Telangana Rashtra Samithi":                "TRS",
	"Samajwadi Party":                          "SP",
	"Rashtriya Janata Dal":                     "RJD",
	"Janata Dal (United)":                      "JDU",
	"Janata Dal (Secular)":                     "JDS",
	"Dravida Munnetra Kazhagam":                "DMK",
	"All India Anna Dravida Munnetra Kazhagam": "AIADMK",
	"All India Majlis-E-Ittehadul Muslimeen":   "AIMIM",
	"Biju Janata Dal":                          "BJD",
	"Zoram People's Movement":                  "ZPM",
	"INDEPENDENT":                              "IND",
	"Independent":                              "IND",
}

var wordRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// PartyAbbreviation returns the conventional short form of a party
// name, falling back to the initials of its longer words.
func PartyAbbreviation(name string) string {
	if short, ok := partyAbbreviations[name]; ok {
		return short
	}
	var letters []string
	for _, w := range wordRe.FindAllString(name, -1) {
		if len(w) > 2 {
			letters = append(letters, strings.ToUpper(w[:1]))
		}
	}
	return strings.Join(letters, "")
}

// NormalizeParties shortens the party names on every record's winner
// and runner-up entries. Candidate rows keep the full party name.
func NormalizeParties(records []*report.Constituency) {
	for _, rec := range records {
		shorten(&rec.Result.Winner)
		shorten(&rec.Result.RunnerUp)
	}
}

func shorten(entry *report.ResultEntry) {
	if entry.Party == nil {
		return
	}
	short := PartyAbbreviation(*entry.Party)
	entry.Party = &short
}
