// Package merge folds several years of reconciled output into one
// cross-year file keyed by the constituencies of the latest year, plus
// a flat per-candidate CSV for spreadsheet work.
package merge

import (
	"encoding/json"
	"fmt"

	"github.com/sansad-info/parsers/report"
)

// Entry is one constituency across every merged year. The identity
// fields come from the latest year; delimitation changes mean older
// years may simply miss an entry.
type Entry struct {
	ID           string
	Constituency string
	StateUT      string
	Years        map[string]*report.Constituency
}

// Merge joins the given years on record ID. The latest year decides
// which constituencies exist and in what order.
func Merge(years map[string][]*report.Constituency, latest string) ([]*Entry, error) {
	latestRecords, ok := years[latest]
	if !ok {
		return nil, fmt.Errorf("latest year %s is not among the loaded years", latest)
	}
	byYear := make(map[string]map[string]*report.Constituency, len(years))
	for year, records := range years {
		indexed := make(map[string]*report.Constituency, len(records))
		for _, rec := range records {
			indexed[rec.ID] = rec
		}
		byYear[year] = indexed
	}
	entries := make([]*Entry, 0, len(latestRecords))
	for _, latestRec := range latestRecords {
		entry := &Entry{
			ID:           latestRec.ID,
			Constituency: latestRec.Name,
			StateUT:      latestRec.StateUT,
			Years:        map[string]*report.Constituency{},
		}
		for year, indexed := range byYear {
			if rec, ok := indexed[latestRec.ID]; ok {
				entry.Years[year] = rec
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MarshalJSON flattens the entry so each year is a top-level key next
// to the identity fields. The identity fields are stripped from the
// per-year records to avoid redundancy.
func (e *Entry) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"ID":           e.ID,
		"Constituency": e.Constituency,
		"State_UT":     e.StateUT,
	}
	for year, rec := range e.Years {
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal record %s of year %s, error %q", rec.ID, year, err)
		}
		var flat map[string]interface{}
		if err := json.Unmarshal(b, &flat); err != nil {
			return nil, fmt.Errorf("failed to rebuild record %s of year %s, error %q", rec.ID, year, err)
		}
		delete(flat, "ID")
		delete(flat, "Constituency")
		delete(flat, "State_UT")
		out[year] = flat
	}
	return json.Marshal(out)
}
