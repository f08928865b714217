package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-labs/course-registry-api/internal/models"
)

// EnrollmentRepository manages persistence for student-course links.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindByID fetches an enrollment by id.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	const query = `SELECT id, course_id, student_id FROM enrollments WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Create inserts a new enrollment and fills in the generated id.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments (course_id, student_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &enrollment.ID, query, enrollment.CourseID, enrollment.StudentID); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Delete removes an enrollment by id.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM enrollments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

// WindowsByStudent returns the course windows behind a student's existing
// enrollments, for the conflict gate.
func (r *EnrollmentRepository) WindowsByStudent(ctx context.Context, studentID int64) ([]models.LinkWindow, error) {
	const query = `SELECT c.id AS course_id, c.start_time, c.end_time
        FROM courses c
        JOIN enrollments e ON e.course_id = c.id
        WHERE e.student_id = $1
        ORDER BY c.id ASC`
	var windows []models.LinkWindow
	if err := r.db.SelectContext(ctx, &windows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student windows: %w", err)
	}
	return windows, nil
}
