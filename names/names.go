// Package names canonicalizes the free-text administrative names found
// on election reports. The summary and detailed reports spell state and
// constituency names inconsistently across years, and the pair
// (State, Constituency) is the join key between the two, so both sides
// must land on the same spelling.
package names

import (
	"regexp"
	"strings"
)

var (
	leadingNumberRe  = regexp.MustCompile(`^\s*[\d\s-]+\s*`)
	categoryMarkerRe = regexp.MustCompile(`(?i)\s*\((SC|ST)\)\s*`)
	categorySuffixRe = regexp.MustCompile(`(?i)-(SC|ST)-?\d*$`)
	numberSuffixRe   = regexp.MustCompile(`\s*-\s*\d+\s*$`)
	genSuffixRe      = regexp.MustCompile(`(?i)-Gen$`)
	spacesRe         = regexp.MustCompile(`\s+`)
	nonNameRunesRe   = regexp.MustCompile(`[^A-Za-z&\-\s]`)
)

// stateCorrections maps known inconsistent state spellings (truncated,
// archaic or oddly cased) to the one spelling used on output records.
// Lookup is case insensitive.
var stateCorrections = map[string]string{
	"andhra prade":                        "Andhra Pradesh",
	"orissa":                              "Odisha",
	"chhattisgarh":                        "Chhattisgarh",
	"nct of delhi":                        "NCT OF Delhi",
	"telangana":                           "Telangana",
	"national capital territory of delhi": "National Capital Territory of Delhi",
}

// CodeToState maps the state/UT codes printed on pre-2014 reports to
// state names. The codes are also the first half of the record ID.
var CodeToState = map[string]string{
	"S01": "Andhra Pradesh", "S02": "Arunachal Pradesh", "S03": "Assam", "S04": "Bihar",
	"S05": "Goa", "S06": "Gujarat", "S07": "Haryana", "S08": "Himachal Pradesh",
	"S09": "Jammu & Kashmir", "S10": "Karnataka", "S11": "Kerala", "S12": "Madhya Pradesh",
	"S13": "Maharashtra", "S14": "Manipur", "S15": "Meghalaya", "S16": "Mizoram",
	"S17": "Nagaland", "S18": "Orissa", "S19": "Punjab", "S20": "Rajasthan",
	"S21": "Sikkim", "S22": "Tamil Nadu", "S23": "Tripura", "S24": "Uttar Pradesh",
	"S25": "West Bengal", "S26": "Chhattisgarh", "S27": "Jharkhand", "S28": "Uttarakhand",
	"U01": "Andaman & Nicobar Islands", "U02": "Chandigarh", "U03": "Dadra & Nagar Haveli",
	"U04": "Daman & Diu", "U05": "National Capital Territory of Delhi", "U06": "Lakshadweep",
	"U07": "Puducherry",
}

// GridStateAliases maps alternate state spellings seen on the tabular
// detailed reports to the spelling the summary side produces. Keys and
// values are uppercase.
var GridStateAliases = map[string]string{
	"ORISSA":                              "ODISHA",
	"DELHI":                               "NCT OF DELHI",
	"NATIONAL CAPITAL TERRITORY OF DELHI": "NCT OF DELHI",
	"CHATTISGARH":                         "CHHATTISGARH",
	"CHHATISGARH":                         "CHHATTISGARH",
}

// TextStateAliases is the counterpart for the text detailed reports,
// whose summary side builds state names from CodeToState.
var TextStateAliases = map[string]string{
	"ORISSA":       "ODISHA",
	"DELHI":        "NATIONAL CAPITAL TERRITORY OF DELHI",
	"NCT OF DELHI": "NATIONAL CAPITAL TERRITORY OF DELHI",
	"CHATTISGARH":  "CHHATTISGARH",
	"CHHATISGARH":  "CHHATTISGARH",
	"CHHATTISGARH": "CHHATTISGARH",
}

// ocr repairs for constituency names lifted out of PDF text, applied in
// order before the regular normalization.
var ocrRepairs = []struct {
	re  *regexp.Regexp
	out string
}{
	{regexp.MustCompile(`â€™`), "'"},
	{regexp.MustCompile(`\bNAGARH\b`), "NAGAR"},
	{regexp.MustCompile(`\bNAGA\b`), "NAGAR"},
	{regexp.MustCompile(`\bUDHAMSINGH$`), "UDHAMSINGH NAGAR"},
	{regexp.MustCompile(`\bISLAND\b`), "ISLANDS"},
}

// Constituency canonicalizes a raw constituency name: leading serial
// numbers, category markers like (SC)/(ST) or -ST suffixes, trailing
// constituency numbers and a literal -Gen suffix are stripped, hyphen
// segments are capword-cased and "&" becomes "and".
func Constituency(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown"
	}
	name := strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))
	name = leadingNumberRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(categoryMarkerRe.ReplaceAllString(name, " "))
	name = categorySuffixRe.ReplaceAllString(name, "")
	name = numberSuffixRe.ReplaceAllString(name, "")
	name = genSuffixRe.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "&", " and ")

	parts := strings.Split(name, "-")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kept = append(kept, capwords(part))
	}
	return strings.Join(kept, "-")
}

// State applies the fixed correction table to a raw state name; inputs
// with no known correction pass through capword-cased.
func State(raw string) string {
	name := strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))
	if corrected, ok := stateCorrections[strings.ToLower(name)]; ok {
		return corrected
	}
	return capwords(name)
}

// CleanPDFName prepares a constituency name recognized inside PDF text
// for normalization: whitespace is collapsed, runes that cannot appear
// in a name are dropped and known OCR misreads are repaired.
func CleanPDFName(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	name := spacesRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	name = nonNameRunesRe.ReplaceAllString(name, "")
	for _, r := range ocrRepairs {
		name = r.re.ReplaceAllString(name, r.out)
	}
	return Constituency(name)
}

// capwords title-cases each space separated word, lowering the rest of
// the word, the way the source reports are expected to read. The
// particle "and" stays lowercase so that names already carrying it
// normalize to themselves.
func capwords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if strings.EqualFold(w, "and") {
			words[i] = "and"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
