package jsondb

import (
	"github.com/edwebhq/edweb/core/quiz"
)

type resultRepository struct {
	store *Store
}

func NewResultRepository(store *Store) quiz.ResultRepository {
	return &resultRepository{store: store}
}

func (repo *resultRepository) CreateResult(r quiz.Result) (quiz.Result, error) {
	rec, err := toRecord(r)
	if err != nil {
		return quiz.Result{}, err
	}
	created, err := repo.store.Create(CollectionResults, rec)
	if err != nil {
		return quiz.Result{}, err
	}
	if err := fromRecord(created, &r); err != nil {
		return quiz.Result{}, err
	}
	return r, nil
}

// FilterResultsByQuizIDs fetches the entire collection unfiltered and keeps
// the results whose quiz id is in ids. The query engine has no in-set
// operator, so this is a full collection scan.
func (repo *resultRepository) FilterResultsByQuizIDs(ids []string) ([]quiz.Result, error) {
	recs, err := repo.store.FindAll(CollectionResults)
	if err != nil {
		return nil, err
	}
	var results []quiz.Result
	if err := fromRecords(FilterByID(recs, "quiz", ids), &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (repo *resultRepository) FilterResultsByUser(userID string) ([]quiz.Result, error) {
	recs, err := repo.store.Find(CollectionResults, Filter{"user": userID})
	if err != nil {
		return nil, err
	}
	var results []quiz.Result
	if err := fromRecords(recs, &results); err != nil {
		return nil, err
	}
	return results, nil
}
