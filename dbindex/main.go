package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"cloud.google.com/go/datastore"
	"github.com/sansad-info/parsers/report"
)

const recordsCollection = "constituency_records"

// indexedRecord is the datastore entity for one constituency in one
// election year. The queryable fields are flattened out of the record;
// the full record travels as an unindexed JSON payload because the
// nested gender maps do not fit datastore's property model.
type indexedRecord struct {
	ID           string
	Year         int
	State        string
	Constituency string
	Winner       string
	Payload      []byte `datastore:",noindex"`
}

func main() {
	file := flag.String("file", "", "path of a year's reconciled output file")
	year := flag.Int("year", 0, "election year of the file being indexed")
	projectID := flag.String("project", "", "Google Cloud project holding the datastore")
	flag.Parse()
	if *file == "" {
		log.Fatal("inform the output file to index")
	}
	if *year == 0 {
		log.Fatal("inform the election year")
	}
	if *projectID == "" {
		log.Fatal("inform the Google Cloud project")
	}
	client, err := datastore.NewClient(context.Background(), *projectID)
	if err != nil {
		log.Fatalf("failed to create datastore client, error %q", err)
	}
	if err := index(*file, *year, newDatastoreRepository(client)); err != nil {
		log.Fatalf("failed to index file %s, error %q", *file, err)
	}
}

func index(file string, year int, repository recordsRepository) error {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read output file %s, error %q", file, err)
	}
	var records []*report.Constituency
	if err := json.Unmarshal(b, &records); err != nil {
		return fmt.Errorf("failed to unmarshal records of file %s, error %q", file, err)
	}
	saved := 0
	for _, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record %s, error %q", rec.ID, err)
		}
		winner := ""
		if rec.Result.Winner.Candidates != nil {
			winner = *rec.Result.Winner.Candidates
		}
		entity := &indexedRecord{
			ID:           rec.ID,
			Year:         year,
			State:        rec.StateUT,
			Constituency: rec.Name,
			Winner:       winner,
			Payload:      payload,
		}
		if err := repository.save(entity); err != nil {
			return err
		}
		saved++
	}
	log.Printf("file [%s], records indexed [%d]\n", file, saved)
	return nil
}
