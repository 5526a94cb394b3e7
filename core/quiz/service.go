package quiz

import (
	"errors"

	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/user"
)

var ErrNotFound = errors.New("quiz not found")

type (
	Repository interface {
		CreateQuiz(q Quiz) (Quiz, error)
		GetQuizByID(id string) (Quiz, error)
		FilterQuizzesByCourse(courseID string) ([]Quiz, error)
	}

	ResultRepository interface {
		CreateResult(r Result) (Result, error)
		// FilterResultsByQuizIDs fetches the whole collection and keeps the
		// results whose quiz id is in ids; the predicate engine has no in-set
		// operator, so this costs a full collection scan.
		FilterResultsByQuizIDs(ids []string) ([]Result, error)
		FilterResultsByUser(userID string) ([]Result, error)
	}

	Service struct {
		repo       Repository
		resultRepo ResultRepository
		userRepo   user.Repository
	}
)

func NewService(repo Repository, resultRepo ResultRepository, userRepo user.Repository) *Service {
	return &Service{repo: repo, resultRepo: resultRepo, userRepo: userRepo}
}

func (svc *Service) Create(nq NewQuiz) (Quiz, error) {
	questions := make([]Question, 0, len(nq.Questions))
	for _, q := range nq.Questions {
		questions = append(questions, Question{
			Text:               q.Text,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
		})
	}
	return svc.repo.CreateQuiz(Quiz{Title: nq.Title, Course: nq.CourseID, Questions: questions})
}

func (svc *Service) GetByID(id string) (Quiz, error) {
	return svc.repo.GetQuizByID(id)
}

func (svc *Service) QueryByCourse(courseID string) ([]Quiz, error) {
	return svc.repo.FilterQuizzesByCourse(courseID)
}

// Submit scores the answers against the quiz, records a Result and updates the
// learner's badges and course progress. A Result is always created; the badge
// is added only if the tier is new, and the quiz is always recorded as
// completed in the user's progress (idempotently). Both effects go out in a
// single update when both changed.
func (svc *Service) Submit(userID, quizID string, answers []int) (Result, error) {
	q, err := svc.repo.GetQuizByID(quizID)
	if err != nil {
		return Result{}, err
	}

	var score int
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectOptionIndex {
			score++
		}
	}
	totalQuestions := len(q.Questions)

	result, err := svc.resultRepo.CreateResult(Result{
		User:           userID,
		Quiz:           q.ID,
		Score:          score,
		TotalQuestions: totalQuestions,
	})
	if err != nil {
		return Result{}, err
	}

	percentage := float64(score) / float64(totalQuestions) * 100
	badge := BadgeFor(percentage)

	// Re-fetch the learner: the record may have moved since authentication.
	// A submission from a since-deleted user still yields a Result.
	usr, err := svc.userRepo.GetUserByID(userID)
	if err != nil {
		if err == user.ErrNotFound {
			return result, nil
		}
		return Result{}, err
	}

	var fields user.UpdateFields
	if badges, changed := core.InsertString(usr.Badges, badge); changed {
		fields.Badges = badges
	}

	progress := usr.CourseProgress
	if progress == nil {
		progress = make(map[string]user.Progress)
	}
	entry := progress[q.Course]
	if completed, changed := core.InsertString(entry.CompletedQuizzes, q.ID); changed {
		entry.CompletedQuizzes = completed
		progress[q.Course] = entry
		fields.CourseProgress = progress
	}

	if !fields.IsEmpty() {
		if _, err := svc.userRepo.UpdateUser(userID, fields); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}

// ResultsByCourse rolls up every result for the course's quizzes, with user
// and quiz resolved into display projections (nil on dangling references).
func (svc *Service) ResultsByCourse(courseID string) ([]CourseResult, error) {
	quizzes, err := svc.repo.FilterQuizzesByCourse(courseID)
	if err != nil {
		return nil, err
	}
	quizIDs := make([]string, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}

	results, err := svc.resultRepo.FilterResultsByQuizIDs(quizIDs)
	if err != nil {
		return nil, err
	}

	populated := make([]CourseResult, 0, len(results))
	for _, r := range results {
		cr := CourseResult{Result: r}
		if usr, err := svc.userRepo.GetUserByID(r.User); err == nil {
			cr.User = &ResultUser{Name: usr.Name, Email: usr.Email}
		}
		if q, err := svc.repo.GetQuizByID(r.Quiz); err == nil {
			cr.Quiz = &ResultQuiz{Title: q.Title}
		}
		populated = append(populated, cr)
	}
	return populated, nil
}

func (svc *Service) ResultsFor(userID string) ([]Result, error) {
	return svc.resultRepo.FilterResultsByUser(userID)
}
