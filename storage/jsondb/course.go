package jsondb

import (
	"github.com/edwebhq/edweb/core/course"
)

type courseRepository struct {
	store *Store
}

func NewCourseRepository(store *Store) course.Repository {
	return &courseRepository{store: store}
}

func (repo *courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	rec, err := toRecord(c)
	if err != nil {
		return course.Course{}, err
	}
	created, err := repo.store.Create(CollectionCourses, rec)
	if err != nil {
		return course.Course{}, err
	}
	if err := fromRecord(created, &c); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	recs, err := repo.store.FindAll(CollectionCourses)
	if err != nil {
		return nil, err
	}
	var courses []course.Course
	if err := fromRecords(recs, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	rec, err := repo.store.FindByID(CollectionCourses, id)
	if err != nil {
		if err == ErrNotFound {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, err
	}
	var c course.Course
	if err := fromRecord(rec, &c); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (repo *courseRepository) FilterCoursesByInstructor(instructorID string) ([]course.Course, error) {
	return repo.filter(Filter{"instructor": instructorID})
}

// FilterCoursesByStudent relies on the array-contains rule of the query
// engine: the scalar student id is matched against the enrolledStudents array.
func (repo *courseRepository) FilterCoursesByStudent(studentID string) ([]course.Course, error) {
	return repo.filter(Filter{"enrolledStudents": studentID})
}

func (repo *courseRepository) UpdateCourse(id string, fields course.UpdateFields) (course.Course, error) {
	rec := Record{}
	if fields.Status != nil {
		rec["status"] = *fields.Status
	}
	if fields.EnrolledStudents != nil {
		rec["enrolledStudents"] = fields.EnrolledStudents
	}

	updated, err := repo.store.Update(CollectionCourses, id, rec)
	if err != nil {
		if err == ErrNotFound {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, err
	}
	var c course.Course
	if err := fromRecord(updated, &c); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (repo *courseRepository) filter(filter Filter) ([]course.Course, error) {
	recs, err := repo.store.Find(CollectionCourses, filter)
	if err != nil {
		return nil, err
	}
	var courses []course.Course
	if err := fromRecords(recs, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
