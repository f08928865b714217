package handler

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/registrar-labs/course-registry-api/internal/models"
	"github.com/registrar-labs/course-registry-api/internal/service"
)

type enrollmentRepoStub struct {
	enrollments map[int64]models.Enrollment
	windows     map[int64][]models.LinkWindow
	nextID      int64
}

func (r *enrollmentRepoStub) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	e, ok := r.enrollments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (r *enrollmentRepoStub) Create(ctx context.Context, enrollment *models.Enrollment) error {
	r.nextID++
	enrollment.ID = r.nextID
	r.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (r *enrollmentRepoStub) Delete(ctx context.Context, id int64) error {
	delete(r.enrollments, id)
	return nil
}

func (r *enrollmentRepoStub) WindowsByStudent(ctx context.Context, studentID int64) ([]models.LinkWindow, error) {
	return r.windows[studentID], nil
}

type courseReaderStub struct {
	courses map[int64]models.Course
}

func (r *courseReaderStub) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

// Student 1 already holds course 10 at 09:00-10:00. Course 11 starts inside
// that window, course 12 starts right at its end.
func newEnrollmentHandler() *EnrollmentHandler {
	repo := &enrollmentRepoStub{
		enrollments: map[int64]models.Enrollment{
			1: {ID: 1, CourseID: 10, StudentID: 1},
		},
		windows: map[int64][]models.LinkWindow{
			1: {{CourseID: 10, StartTime: 540, EndTime: 600}},
		},
		nextID: 1,
	}
	courses := &courseReaderStub{courses: map[int64]models.Course{
		10: {ID: 10, Title: "Algebra", Days: "Monday", StartTime: 540, EndTime: 600},
		11: {ID: 11, Title: "Physics", Days: "Tuesday", StartTime: 570, EndTime: 585},
		12: {ID: 12, Title: "Drawing", Days: "Monday", StartTime: 600, EndTime: 660},
	}}
	students := newStudentRepoStub(
		models.Student{ID: 1, Name: "Ada", Email: "ada@example.com", Phone: "5551234567"},
	)
	svc := service.NewEnrollmentService(repo, courses, students, nil, nil, zap.NewNop())
	return NewEnrollmentHandler(svc)
}

func postEnrollment(handler *EnrollmentHandler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/enrollments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handler.Create(c)
	return w
}

func TestEnrollmentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newEnrollmentHandler()

	w := postEnrollment(handler, `{"course_id":12,"student_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "enrollment created", env.Message)
}

func TestEnrollmentHandlerCreateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newEnrollmentHandler()

	w := postEnrollment(handler, `{"course_id":11,"student_id":1}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestEnrollmentHandlerCreateDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newEnrollmentHandler()

	w := postEnrollment(handler, `{"course_id":10,"student_id":1}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "DUPLICATE", env.Error.Code)
}

func TestEnrollmentHandlerCreateMissingPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newEnrollmentHandler()

	w := postEnrollment(handler, `{"course_id":12}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "MISSING_KEY", env.Error.Code)
}

func TestEnrollmentHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newEnrollmentHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/enrollments/1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "deleted enrollment with id: 1", env.Message)
}

func TestEnrollmentHandlerDeleteNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newEnrollmentHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/enrollments/9", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "9"}}

	handler.Delete(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
