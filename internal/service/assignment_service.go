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

type assignmentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int64) error
	WindowsByInstructor(ctx context.Context, instructorID int64) ([]models.LinkWindow, error)
}

type assignmentInstructorReader interface {
	FindByID(ctx context.Context, id int64) (*models.Instructor, error)
}

// CreateAssignmentRequest holds the payload for linking an instructor to a
// course.
type CreateAssignmentRequest struct {
	CourseID     int64 `json:"course_id" validate:"required"`
	InstructorID int64 `json:"instructor_id" validate:"required"`
}

// AssignmentService creates and deletes instructor-course links through the
// duplicate/conflict gate. The full course projection embeds assigned
// instructors, so mutations also invalidate the course list cache.
type AssignmentService struct {
	repo        assignmentRepository
	courses     enrollmentCourseReader
	instructors assignmentInstructorReader
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(repo assignmentRepository, courses enrollmentCourseReader, instructors assignmentInstructorReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, courses: courses, instructors: instructors, cache: cache, validator: validate, logger: logger}
}

// Create links an instructor to a course after the duplicate and conflict
// checks pass against the instructor's existing schedule.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrMissingKey, "course_id and instructor_id are required")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoRecord, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if _, err := s.instructors.FindByID(ctx, req.InstructorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoRecord, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}

	windows, err := s.repo.WindowsByInstructor(ctx, req.InstructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor schedule")
	}
	existing := make([]schedule.CourseWindow, len(windows))
	for i, w := range windows {
		existing[i] = schedule.CourseWindow{CourseID: w.CourseID, Window: schedule.Window{Start: w.StartTime, End: w.EndTime}}
	}
	candidate := schedule.Window{Start: course.StartTime, End: course.EndTime}
	if err := schedule.CheckLinks(course.ID, candidate, existing); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{CourseID: req.CourseID, InstructorID: req.InstructorID}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	s.cache.Invalidate(ctx, courseCachePattern)
	s.logger.Info("assignment created",
		zap.Int64("id", assignment.ID),
		zap.Int64("course_id", assignment.CourseID),
		zap.Int64("instructor_id", assignment.InstructorID))
	return assignment, nil
}

// Delete removes an instructor-course link by id.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNoRecord, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	s.cache.Invalidate(ctx, courseCachePattern)
	return nil
}
