// Package jsondb persists every collection of the platform in a single JSON
// document and implements the domain repositories on top of it. Each
// operation runs a full load -> operate -> flush cycle; cycles are serialized
// behind the store's writer lock so one mutation completes before the next
// begins.
package jsondb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/edwebhq/edweb/core"
)

// The four known collections.
const (
	CollectionUsers   = "users"
	CollectionCourses = "courses"
	CollectionQuizzes = "quizzes"
	CollectionResults = "results"
)

var collections = []string{CollectionUsers, CollectionCourses, CollectionQuizzes, CollectionResults}

type (
	// Record is one stored document. Values are what encoding/json produces:
	// string, float64, bool, nil, []interface{} or map[string]interface{}.
	Record map[string]interface{}

	// Filter maps field names to expected values; see Match for semantics.
	Filter map[string]interface{}

	// database is the whole persisted state: collection name -> ordered records.
	database map[string][]Record
)

var (
	// ErrNotFound signals absence; callers treat it as a sentinel, not a failure.
	ErrNotFound = errors.New("record not found")

	// ErrCollectionNotDefined is a programmer error: the collection name is
	// not one of the four known collections.
	ErrCollectionNotDefined = errors.New("collection not defined")
)

// CorruptError means the persisted representation could not be parsed.
// Not recoverable in-process.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string { return fmt.Sprintf("corrupt store %s: %v", e.Path, e.Err) }
func (e *CorruptError) Unwrap() error { return e.Err }

// Store owns the single on-disk representation of all collections.
type Store struct {
	path string
	mu   sync.RWMutex
}

// Path returns the location of the on-disk representation.
func (s *Store) Path() string { return s.path }

// Open readies the store at path. A missing file is initialized with all
// collections empty and persisted; an existing one is checked for
// parseability so corruption surfaces at boot rather than mid-request.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, errors.Wrap(err, "creating store directory")
			}
		}
		empty := make(database, len(collections))
		for _, c := range collections {
			empty[c] = []Record{}
		}
		if err := s.flush(empty); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, errors.Wrap(err, "checking store file")
	}

	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load deserializes the entire store. Collections missing from the file come
// back as empty sequences.
func (s *Store) load() (database, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "reading store")
	}

	var db database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	for _, c := range collections {
		if db[c] == nil {
			db[c] = []Record{}
		}
	}
	return db, nil
}

// flush serializes all collections and overwrites the file in one write.
// There is no partial or incremental flush.
func (s *Store) flush(db database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding store")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrap(err, "writing store")
	}
	return nil
}

// fatal converts a parse failure on a live store into a shutdown error so
// the process stops serving instead of retrying against an unreadable file.
// Open keeps the typed CorruptError so corruption at boot stays inspectable.
func fatal(err error) error {
	if cerr, ok := err.(*CorruptError); ok {
		return core.NewShutdownError(cerr.Error())
	}
	return err
}

func checkCollection(name string) error {
	for _, c := range collections {
		if c == name {
			return nil
		}
	}
	return errors.Wrapf(ErrCollectionNotDefined, "%q", name)
}
