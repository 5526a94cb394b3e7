package quiz

import (
	"fmt"
	"time"

	"github.com/edwebhq/edweb/core"
)

// Badge tiers, assigned from the submission percentage.
const (
	BadgeLegend       = "Legend"
	BadgeNewbie       = "Newbie"
	BadgeIntermediate = "Intermediate"
)

// BadgeFor maps a submission percentage to a badge tier.
// Boundaries are inclusive: 80 is a Legend, 50 is a Newbie.
func BadgeFor(percentage float64) string {
	switch {
	case percentage >= 80:
		return BadgeLegend
	case percentage <= 50:
		return BadgeNewbie
	default:
		return BadgeIntermediate
	}
}

type Question struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
}

type Quiz struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	Course    string     `json:"course"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
}

type Result struct {
	ID             string    `json:"_id"`
	User           string    `json:"user"`
	Quiz           string    `json:"quiz"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// ResultUser and ResultQuiz are the display projections attached to a
// populated result; nil when the reference no longer resolves.
type (
	ResultUser struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	ResultQuiz struct {
		Title string `json:"title"`
	}

	CourseResult struct {
		Result
		User *ResultUser `json:"user"`
		Quiz *ResultQuiz `json:"quiz"`
	}
)

// NewQuiz contains information needed to create a new Quiz.
type NewQuiz struct {
	Title     string        `json:"title" validate:"required"`
	CourseID  string        `json:"courseId" validate:"required"`
	Questions []NewQuestion `json:"questions" validate:"required,min=1,dive"`
}

type NewQuestion struct {
	Text               string   `json:"text" validate:"required"`
	Options            []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectOptionIndex int      `json:"correctOptionIndex" validate:"gte=0"`
}

func (nq *NewQuiz) Validate() error {
	nq.Title = core.CleanString(nq.Title)

	if err := core.Validate.Struct(nq); err != nil {
		return err
	}
	for i, q := range nq.Questions {
		if q.CorrectOptionIndex >= len(q.Options) {
			return core.NewValidationError(nil, core.FieldError{
				Field: fmt.Sprintf("questions[%d].correctOptionIndex", i),
				Error: "correct option index out of range",
			})
		}
	}
	return nil
}

// Submission is an ordered list of selected option indices, one per question.
type Submission struct {
	Answers []int `json:"answers" validate:"required"`
}

func (s *Submission) Validate() error { return core.Validate.Struct(s) }
