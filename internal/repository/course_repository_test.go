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

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "days", "start_time", "end_time", "description"}).
		AddRow(1, "Algebra", "Monday,Wednesday", 630, 720, "").
		AddRow(2, "Physics", "Tuesday", 540, 600, "mechanics")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, days, start_time, end_time, description FROM courses ORDER BY id ASC")).
		WillReturnRows(rows)

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Monday,Wednesday", courses[0].Days)
	assert.Equal(t, 540, courses[1].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("INSERT INTO courses").
		WithArgs("Algebra", "Monday", 630, 720, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	course := &models.Course{Title: "Algebra", Days: "Monday", StartTime: 630, EndTime: 720}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.Equal(t, int64(3), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("UPDATE courses SET").
		WithArgs("Algebra II", "Monday", 630, 720, "sequel", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &models.Course{
		ID: 3, Title: "Algebra II", Days: "Monday", StartTime: 630, EndTime: 720, Description: "sequel",
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListInstructors(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "bio"}).
		AddRow(5, "Grace", "grace@example.com", "5550001111", "numerics")
	mock.ExpectQuery("SELECT i.id, i.name, i.email, i.phone, i.bio").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	instructors, err := repo.ListInstructors(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, instructors, 1)
	assert.Equal(t, "Grace", instructors[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListStudents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone"}).
		AddRow(2, "Alan", "alan@example.com", "5557654321")
	mock.ExpectQuery("SELECT s.id, s.name, s.email, s.phone").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	students, err := repo.ListStudents(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Alan", students[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
