package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/registrar-labs/course-registry-api/internal/models"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

func newExportFixture() *ExportService {
	repo := &mockCourseRepo{
		items: map[int64]*models.Course{
			1: {ID: 1, Title: "Linear Algebra", Days: "Monday", StartTime: 630, EndTime: 720},
		},
		instructors: map[int64][]models.Instructor{
			1: {{ID: 2, Name: "Grace", Email: "grace@example.com"}},
		},
		students: map[int64][]models.Student{
			1: {{ID: 3, Name: "Ada", Email: "ada@example.com"}},
		},
		nextID: 1,
	}
	return NewExportService(repo, nil, nil, zap.NewNop())
}

func TestExportServiceRosterCSV(t *testing.T) {
	svc := newExportFixture()

	roster, err := svc.Roster(context.Background(), 1, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", roster.ContentType)
	assert.Equal(t, "roster-1-linear-algebra.csv", roster.Filename)

	body := string(roster.Payload)
	assert.True(t, strings.HasPrefix(body, "role,uid,name,email"))
	assert.Contains(t, body, "instructor,2,Grace,grace@example.com")
	assert.Contains(t, body, "student,3,Ada,ada@example.com")
}

func TestExportServiceRosterDefaultsToCSV(t *testing.T) {
	svc := newExportFixture()

	roster, err := svc.Roster(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", roster.ContentType)
}

func TestExportServiceRosterPDF(t *testing.T) {
	svc := newExportFixture()

	roster, err := svc.Roster(context.Background(), 1, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", roster.ContentType)
	assert.NotEmpty(t, roster.Payload)
}

func TestExportServiceRosterBadFormat(t *testing.T) {
	svc := newExportFixture()

	_, err := svc.Roster(context.Background(), 1, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBadFormat.Code, errCode(t, err))
}

func TestExportServiceRosterCourseNotFound(t *testing.T) {
	svc := newExportFixture()

	_, err := svc.Roster(context.Background(), 9, "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoRecord.Code, errCode(t, err))
}
