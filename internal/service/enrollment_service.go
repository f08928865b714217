package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/registrar-labs/course-registry-api/internal/models"
	"github.com/registrar-labs/course-registry-api/internal/schedule"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

type enrollmentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
	WindowsByStudent(ctx context.Context, studentID int64) ([]models.LinkWindow, error)
}

type enrollmentCourseReader interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

type enrollmentStudentReader interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

// CreateEnrollmentRequest holds the payload for linking a student to a course.
type CreateEnrollmentRequest struct {
	CourseID  int64 `json:"course_id" validate:"required"`
	StudentID int64 `json:"student_id" validate:"required"`
}

// EnrollmentService creates and deletes student-course links through the
// duplicate/conflict gate.
type EnrollmentService struct {
	repo      enrollmentRepository
	courses   enrollmentCourseReader
	students  enrollmentStudentReader
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, courses enrollmentCourseReader, students enrollmentStudentReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, courses: courses, students: students, cache: cache, validator: validate, logger: logger}
}

// Create links a student to a course after the duplicate and conflict checks
// pass against the student's existing schedule.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrMissingKey, "course_id and student_id are required")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoRecord, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoRecord, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	windows, err := s.repo.WindowsByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student schedule")
	}
	existing := make([]schedule.CourseWindow, len(windows))
	for i, w := range windows {
		existing[i] = schedule.CourseWindow{CourseID: w.CourseID, Window: schedule.Window{Start: w.StartTime, End: w.EndTime}}
	}
	candidate := schedule.Window{Start: course.StartTime, End: course.EndTime}
	if err := schedule.CheckLinks(course.ID, candidate, existing); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{CourseID: req.CourseID, StudentID: req.StudentID}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	s.cache.Invalidate(ctx, courseCachePattern)
	s.logger.Info("enrollment created",
		zap.Int64("id", enrollment.ID),
		zap.Int64("course_id", enrollment.CourseID),
		zap.Int64("student_id", enrollment.StudentID))
	return enrollment, nil
}

// Delete removes a student-course link by id.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNoRecord, "enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
	}
	s.cache.Invalidate(ctx, courseCachePattern)
	return nil
}
