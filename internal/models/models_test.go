package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

func TestParseDetail(t *testing.T) {
	for raw, want := range map[string]Detail{"": DetailFull, "full": DetailFull, "short": DetailShort} {
		got, err := ParseDetail(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseDetail("medium")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrBadDetail.Code, appErr.Code)
}

func TestStudentProjectionsAreIdempotent(t *testing.T) {
	student := Student{ID: 3, Name: "Ada", Email: "ada@example.com", Phone: "5551234567"}
	assert.Equal(t, student.Full(), student.Full())
	assert.Equal(t, student.Short(), student.Short())
	assert.Equal(t, StudentShort{UID: 3, Name: "Ada"}, student.Short())
}

func TestCourseFullProjection(t *testing.T) {
	course := Course{ID: 9, Title: "Algebra", Days: "Monday,Wednesday", StartTime: 630, EndTime: 720, Description: "d"}
	instructors := []PersonSummary{{UID: 4, Name: "Grace", Email: "grace@example.com"}}

	full := course.Full(instructors)
	assert.Equal(t, int64(9), full.UID)
	assert.Equal(t, []string{"Monday", "Wednesday"}, full.Days)
	assert.Equal(t, "10:30", full.StartTime)
	assert.Equal(t, "12:00", full.EndTime)
	assert.Equal(t, instructors, full.Instructors)
	assert.Equal(t, full, course.Full(instructors))
}

func TestCourseFullProjectionNilInstructors(t *testing.T) {
	course := Course{ID: 1, Title: "Algebra", Days: "Friday", StartTime: 450, EndTime: 510}
	full := course.Full(nil)
	assert.NotNil(t, full.Instructors)
	assert.Empty(t, full.Instructors)
}

func TestCourseDayList(t *testing.T) {
	assert.Nil(t, Course{}.DayList())
	assert.Equal(t, []string{"Monday"}, Course{Days: "Monday"}.DayList())
}

func TestClaimsHasScope(t *testing.T) {
	claims := &Claims{Scopes: []string{ScopeManageCourses}}
	assert.True(t, claims.HasScope(ScopeManageCourses))
	assert.False(t, claims.HasScope(ScopeManageStudents))
	assert.False(t, (*Claims)(nil).HasScope(ScopeManageCourses))
}
