package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-labs/course-registry-api/internal/models"
)

func TestEnrollmentRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO enrollments (course_id, student_id) VALUES ($1, $2) RETURNING id")).
		WithArgs(int64(4), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	enrollment := &models.Enrollment{CourseID: 4, StudentID: 2}
	require.NoError(t, repo.Create(context.Background(), enrollment))
	assert.Equal(t, int64(11), enrollment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("DELETE FROM enrollments WHERE id").
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryWindowsByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"course_id", "start_time", "end_time"}).
		AddRow(4, 540, 600).
		AddRow(7, 630, 720)
	mock.ExpectQuery("SELECT c.id AS course_id, c.start_time, c.end_time").
		WithArgs(int64(2)).
		WillReturnRows(rows)

	windows, err := repo.WindowsByStudent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, int64(4), windows[0].CourseID)
	assert.Equal(t, 630, windows[1].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}
