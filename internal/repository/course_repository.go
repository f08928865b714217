package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-labs/course-registry-api/internal/models"
)

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns all courses ordered by id ascending.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, title, days, start_time, end_time, description FROM courses ORDER BY id ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT id, title, days, start_time, end_time, description FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course record and fills in the generated id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (title, days, start_time, end_time, description)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.GetContext(ctx, &course.ID, query, course.Title, course.Days, course.StartTime, course.EndTime, course.Description); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies an existing course record.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses SET title = :title, days = :days, start_time = :start_time, end_time = :end_time, description = :description WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes a course. Enrollments and assignments cascade at the schema
// level.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM courses WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// ListInstructors returns the instructors assigned to a course, ordered by id.
func (r *CourseRepository) ListInstructors(ctx context.Context, courseID int64) ([]models.Instructor, error) {
	const query = `SELECT i.id, i.name, i.email, i.phone, i.bio
        FROM instructors i
        JOIN assignments a ON a.instructor_id = i.id
        WHERE a.course_id = $1
        ORDER BY i.id ASC`
	var instructors []models.Instructor
	if err := r.db.SelectContext(ctx, &instructors, query, courseID); err != nil {
		return nil, fmt.Errorf("list course instructors: %w", err)
	}
	return instructors, nil
}

// ListStudents returns the students enrolled in a course, ordered by id.
func (r *CourseRepository) ListStudents(ctx context.Context, courseID int64) ([]models.Student, error) {
	const query = `SELECT s.id, s.name, s.email, s.phone
        FROM students s
        JOIN enrollments e ON e.student_id = s.id
        WHERE e.course_id = $1
        ORDER BY s.id ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	return students, nil
}
