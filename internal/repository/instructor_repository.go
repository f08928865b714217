package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-labs/course-registry-api/internal/models"
)

// InstructorRepository manages persistence for instructors.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs an InstructorRepository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// List returns all instructors ordered by id ascending.
func (r *InstructorRepository) List(ctx context.Context) ([]models.Instructor, error) {
	const query = `SELECT id, name, email, phone, bio FROM instructors ORDER BY id ASC`
	var instructors []models.Instructor
	if err := r.db.SelectContext(ctx, &instructors, query); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return instructors, nil
}

// FindByID fetches an instructor by id.
func (r *InstructorRepository) FindByID(ctx context.Context, id int64) (*models.Instructor, error) {
	const query = `SELECT id, name, email, phone, bio FROM instructors WHERE id = $1`
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, query, id); err != nil {
		return nil, err
	}
	return &instructor, nil
}

// ExistsByEmail checks if another instructor uses the same email.
func (r *InstructorRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM instructors WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check instructor email: %w", err)
	}
	return true, nil
}

// Create inserts a new instructor record and fills in the generated id.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	const query = `INSERT INTO instructors (name, email, phone, bio) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &instructor.ID, query, instructor.Name, instructor.Email, instructor.Phone, instructor.Bio); err != nil {
		return fmt.Errorf("create instructor: %w", err)
	}
	return nil
}

// Update modifies an existing instructor record.
func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	const query = `UPDATE instructors SET name = :name, email = :email, phone = :phone, bio = :bio WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, instructor); err != nil {
		return fmt.Errorf("update instructor: %w", err)
	}
	return nil
}

// Delete removes an instructor. Assignments cascade at the schema level.
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM instructors WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}
	return nil
}

// ListCourses returns the courses an instructor is assigned to, ordered by id.
func (r *InstructorRepository) ListCourses(ctx context.Context, instructorID int64) ([]models.Course, error) {
	const query = `SELECT c.id, c.title, c.days, c.start_time, c.end_time, c.description
        FROM courses c
        JOIN assignments a ON a.course_id = c.id
        WHERE a.instructor_id = $1
        ORDER BY c.id ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, instructorID); err != nil {
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}
	return courses, nil
}
