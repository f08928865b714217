package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-labs/course-registry-api/internal/models"
)

// AssignmentRepository manages persistence for instructor-course links.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// FindByID fetches an assignment by id.
func (r *AssignmentRepository) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	const query = `SELECT id, course_id, instructor_id FROM assignments WHERE id = $1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create inserts a new assignment and fills in the generated id.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	const query = `INSERT INTO assignments (course_id, instructor_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &assignment.ID, query, assignment.CourseID, assignment.InstructorID); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment by id.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM assignments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// WindowsByInstructor returns the course windows behind an instructor's
// existing assignments, for the conflict gate.
func (r *AssignmentRepository) WindowsByInstructor(ctx context.Context, instructorID int64) ([]models.LinkWindow, error) {
	const query = `SELECT c.id AS course_id, c.start_time, c.end_time
        FROM courses c
        JOIN assignments a ON a.course_id = c.id
        WHERE a.instructor_id = $1
        ORDER BY c.id ASC`
	var windows []models.LinkWindow
	if err := r.db.SelectContext(ctx, &windows, query, instructorID); err != nil {
		return nil, fmt.Errorf("list instructor windows: %w", err)
	}
	return windows, nil
}
