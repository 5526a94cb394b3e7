package jsondb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	rec := Record{
		"_id":              "c1",
		"title":            "Go 101",
		"price":            float64(25),
		"published":        true,
		"instructor":       "u1",
		"enrolledStudents": []interface{}{"u2", "u3"},
		"meta":             map[string]interface{}{"level": "intro"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter matches", filter: Filter{}, want: true},
		{name: "nil filter matches", filter: nil, want: true},
		{name: "single field equal", filter: Filter{"title": "Go 101"}, want: true},
		{name: "single field not equal", filter: Filter{"title": "Go 102"}, want: false},
		{name: "conjunction all match", filter: Filter{"title": "Go 101", "instructor": "u1"}, want: true},
		{name: "conjunction one mismatch", filter: Filter{"title": "Go 101", "instructor": "u9"}, want: false},
		{name: "missing field", filter: Filter{"category": "dev"}, want: false},
		{name: "number equal", filter: Filter{"price": float64(25)}, want: true},
		{name: "no numeric coercion", filter: Filter{"price": "25"}, want: false},
		{name: "no int to float coercion", filter: Filter{"price": 25}, want: false},
		{name: "bool equal", filter: Filter{"published": true}, want: true},
		{name: "array contains scalar", filter: Filter{"enrolledStudents": "u2"}, want: true},
		{name: "array does not contain scalar", filter: Filter{"enrolledStudents": "u9"}, want: false},
		{name: "array vs array never equal", filter: Filter{"enrolledStudents": []interface{}{"u2", "u3"}}, want: false},
		{name: "object vs object never equal", filter: Filter{"meta": map[string]interface{}{"level": "intro"}}, want: false},
		{name: "scalar vs object never equal", filter: Filter{"meta": "intro"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(rec, tt.filter); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_apply_preservesOrder(t *testing.T) {
	recs := []Record{
		{"_id": "1", "course": "c1"},
		{"_id": "2", "course": "c2"},
		{"_id": "3", "course": "c1"},
	}

	matched := apply(recs, Filter{"course": "c1"})

	ids := make([]string, 0, len(matched))
	for _, rec := range matched {
		ids = append(ids, recordID(rec))
	}
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestFilterByID(t *testing.T) {
	recs := []Record{
		{"_id": "r1", "quiz": "q1"},
		{"_id": "r2", "quiz": "q2"},
		{"_id": "r3", "quiz": "q3"},
		{"_id": "r4", "quiz": "q1"},
		{"_id": "r5"}, // no quiz field
	}

	matched := FilterByID(recs, "quiz", []string{"q1", "q3"})

	ids := make([]string, 0, len(matched))
	for _, rec := range matched {
		ids = append(ids, recordID(rec))
	}
	assert.Equal(t, []string{"r1", "r3", "r4"}, ids)

	assert.Empty(t, FilterByID(recs, "quiz", nil))
}
