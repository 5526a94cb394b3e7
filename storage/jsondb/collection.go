package jsondb

import (
	"time"

	"github.com/google/uuid"
)

// FindAll returns the full ordered sequence of a collection.
func (s *Store) FindAll(collection string) ([]Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.load()
	if err != nil {
		return nil, fatal(err)
	}
	return db[collection], nil
}

// FindByID returns the record with the given id, or ErrNotFound.
func (s *Store) FindByID(collection, id string) (Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.load()
	if err != nil {
		return nil, fatal(err)
	}
	for _, rec := range db[collection] {
		if recordID(rec) == id {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// FindOne returns the first record (in collection order) matching filter,
// or ErrNotFound.
func (s *Store) FindOne(collection string, filter Filter) (Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.load()
	if err != nil {
		return nil, fatal(err)
	}
	for _, rec := range db[collection] {
		if Match(rec, filter) {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// Find returns all records matching filter, in collection order.
// An empty filter matches everything.
func (s *Store) Find(collection string, filter Filter) ([]Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.load()
	if err != nil {
		return nil, fatal(err)
	}
	return apply(db[collection], filter), nil
}

// Create appends a new record with a store-assigned identifier and creation
// timestamp, flushes, and returns the stored record. The identifier is never
// reassigned afterwards.
func (s *Store) Create(collection string, fields Record) (Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return nil, fatal(err)
	}

	rec := make(Record, len(fields)+2)
	for k, v := range fields {
		rec[k] = v
	}
	rec["_id"] = uuid.New().String()
	rec["createdAt"] = time.Now().UTC().Format(time.RFC3339)

	db[collection] = append(db[collection], rec)
	if err := s.flush(db); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update shallow-merges fields onto the record with the given id: each named
// top-level field replaces the old value entirely, arrays and maps included.
// Returns ErrNotFound without writing when the id is absent. The record id
// itself cannot be overwritten.
func (s *Store) Update(collection, id string, fields Record) (Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return nil, fatal(err)
	}

	recs := db[collection]
	for i, rec := range recs {
		if recordID(rec) != id {
			continue
		}
		for k, v := range fields {
			if k == "_id" {
				continue
			}
			rec[k] = v
		}
		recs[i] = rec
		if err := s.flush(db); err != nil {
			return nil, err
		}
		return rec, nil
	}
	return nil, ErrNotFound
}

func recordID(rec Record) string {
	id, _ := rec["_id"].(string)
	return id
}
