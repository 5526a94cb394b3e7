package jsondb

import (
	"github.com/edwebhq/edweb/core/quiz"
)

type quizRepository struct {
	store *Store
}

func NewQuizRepository(store *Store) quiz.Repository {
	return &quizRepository{store: store}
}

func (repo *quizRepository) CreateQuiz(q quiz.Quiz) (quiz.Quiz, error) {
	rec, err := toRecord(q)
	if err != nil {
		return quiz.Quiz{}, err
	}
	created, err := repo.store.Create(CollectionQuizzes, rec)
	if err != nil {
		return quiz.Quiz{}, err
	}
	if err := fromRecord(created, &q); err != nil {
		return quiz.Quiz{}, err
	}
	return q, nil
}

func (repo *quizRepository) GetQuizByID(id string) (quiz.Quiz, error) {
	rec, err := repo.store.FindByID(CollectionQuizzes, id)
	if err != nil {
		if err == ErrNotFound {
			return quiz.Quiz{}, quiz.ErrNotFound
		}
		return quiz.Quiz{}, err
	}
	var q quiz.Quiz
	if err := fromRecord(rec, &q); err != nil {
		return quiz.Quiz{}, err
	}
	return q, nil
}

func (repo *quizRepository) FilterQuizzesByCourse(courseID string) ([]quiz.Quiz, error) {
	recs, err := repo.store.Find(CollectionQuizzes, Filter{"course": courseID})
	if err != nil {
		return nil, err
	}
	var quizzes []quiz.Quiz
	if err := fromRecords(recs, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}
