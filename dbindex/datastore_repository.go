package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
)

type datastoreRepository struct {
	client *datastore.Client
}

func newDatastoreRepository(client *datastore.Client) recordsRepository {
	return &datastoreRepository{
		client: client,
	}
}

func (ds *datastoreRepository) save(record *indexedRecord) error {
	key := datastore.NameKey(recordsCollection, fmt.Sprintf("%s_%d", record.ID, record.Year), nil)
	if _, err := ds.client.Put(context.Background(), key, record); err != nil {
		return fmt.Errorf("failed to save record with id [%s] and year [%d], error %q", record.ID, record.Year, err)
	}
	return nil
}

func (ds *datastoreRepository) findByConstituency(state, constituency string) (*indexedRecord, error) {
	query := datastore.NewQuery(recordsCollection).Filter("State =", state).Filter("Constituency =", constituency)
	var entities []*indexedRecord
	if _, err := ds.client.GetAll(context.Background(), query, &entities); err != nil {
		return nil, fmt.Errorf("failed to look for record using state [%s] and constituency [%s], error %q", state, constituency, err)
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("no record found for state [%s] and constituency [%s]", state, constituency)
	}
	return entities[0], nil
}
