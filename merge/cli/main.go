package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"

	"github.com/sansad-info/parsers/filestorage"
	"github.com/sansad-info/parsers/merge"
	"github.com/sansad-info/parsers/report"
)

func main() {
	dataDir := flag.String("dataDir", "", "directory holding the per-year output files named general-election-<year>.json")
	yearsFlag := flag.String("years", "2009,2014,2019,2024", "comma separated years to merge")
	outDir := flag.String("outDir", "", "directory where the merged files go")
	flag.Parse()
	if *dataDir == "" {
		log.Fatal("inform the data directory")
	}
	if *outDir == "" {
		log.Fatal("inform the output directory")
	}
	yearList := strings.Split(*yearsFlag, ",")
	years := make(map[string][]*report.Constituency, len(yearList))
	for _, year := range yearList {
		year = strings.TrimSpace(year)
		records, err := loadYear(*dataDir, year)
		if err != nil {
			log.Fatalf("failed to load year %s, error %q", year, err)
		}
		merge.NormalizeParties(records)
		years[year] = records
	}
	latest := strings.TrimSpace(yearList[len(yearList)-1])
	entries, err := merge.Merge(years, latest)
	if err != nil {
		log.Fatalf("failed to merge years, error %q", err)
	}

	storage := filestorage.NewLocalStorage()
	b, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		log.Fatalf("failed to marshal merged entries, error %q", err)
	}
	storedAt, err := storage.Upload(b, *outDir, "merged_data.json")
	if err != nil {
		log.Fatalf("failed to save merged file, error %q", err)
	}
	log.Printf("merged %d constituencies over %d years into %s\n", len(entries), len(years), storedAt)

	var buf bytes.Buffer
	if err := merge.WriteCandidatesCSV(years, &buf); err != nil {
		log.Fatalf("failed to build the candidates csv, error %q", err)
	}
	storedAt, err = storage.Upload(buf.Bytes(), *outDir, "candidates.csv")
	if err != nil {
		log.Fatalf("failed to save candidates csv, error %q", err)
	}
	log.Printf("candidates csv stored at %s\n", storedAt)
}

func loadYear(dataDir, year string) ([]*report.Constituency, error) {
	path := filepath.Join(dataDir, fmt.Sprintf("general-election-%s.json", year))
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s, error %q", path, err)
	}
	var records []*report.Constituency
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal records of file %s, error %q", path, err)
	}
	return records, nil
}
