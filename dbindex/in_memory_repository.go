package main

import (
	"fmt"
	"strings"
)

type inMemoryRepository struct {
	db map[string]*indexedRecord
}

func newInMemoryRepository() recordsRepository {
	return &inMemoryRepository{
		db: make(map[string]*indexedRecord),
	}
}

func (m *inMemoryRepository) save(record *indexedRecord) error {
	m.db[fmt.Sprintf("%s_%d", record.ID, record.Year)] = record
	return nil
}

func (m *inMemoryRepository) findByConstituency(state, constituency string) (*indexedRecord, error) {
	for _, record := range m.db {
		if strings.EqualFold(record.State, state) && strings.EqualFold(record.Constituency, constituency) {
			return record, nil
		}
	}
	return nil, fmt.Errorf("no record found for state [%s] and constituency [%s]", state, constituency)
}
