package main

type recordsRepository interface {
	save(record *indexedRecord) error

	findByConstituency(state, constituency string) (*indexedRecord, error)
}
