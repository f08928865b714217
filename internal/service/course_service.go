package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/registrar-labs/course-registry-api/internal/fieldset"
	"github.com/registrar-labs/course-registry-api/internal/models"
	"github.com/registrar-labs/course-registry-api/internal/schedule"
	"github.com/registrar-labs/course-registry-api/internal/validate"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	ListInstructors(ctx context.Context, courseID int64) ([]models.Instructor, error)
	ListStudents(ctx context.Context, courseID int64) ([]models.Student, error)
}

// Cache keys for the projected course lists. Any course, enrollment or
// assignment mutation invalidates the whole prefix.
const (
	courseCachePattern  = "courses:*"
	courseCacheKeyFull  = "courses:list:full"
	courseCacheKeyShort = "courses:list:short"
)

// courseFields is the accepted request body shape for courses.
var courseFields = fieldset.Set{
	{Name: "title", Required: true},
	{Name: "days", Required: true},
	{Name: "start_time", Required: true},
	{Name: "end_time", Required: true},
	{Name: "description", Required: false},
}

// CourseWithStudents is the course-with-people projection for enrollments.
type CourseWithStudents struct {
	Course   models.CourseFull      `json:"course"`
	Students []models.PersonSummary `json:"students"`
}

// CourseWithInstructors is the course-with-people projection for assignments.
type CourseWithInstructors struct {
	Course      models.CourseFull      `json:"course"`
	Instructors []models.PersonSummary `json:"instructors"`
}

// CourseService handles course use-cases.
type CourseService struct {
	repo        courseRepository
	cache       *CacheService
	allowedDays []string
	bounds      schedule.Bounds
	pageSize    int
	logger      *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, cache *CacheService, allowedDays []string, bounds schedule.Bounds, pageSize int, logger *zap.Logger) *CourseService {
	if pageSize <= 0 {
		pageSize = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, allowedDays: allowedDays, bounds: bounds, pageSize: pageSize, logger: logger}
}

// List returns projected courses and pagination metadata. The projected list
// is cached whole; pagination slices the cached copy.
func (s *CourseService) List(ctx context.Context, detailRaw, pageRaw string) (interface{}, *models.Pagination, error) {
	detail, err := models.ParseDetail(detailRaw)
	if err != nil {
		return nil, nil, err
	}
	page, _, err := ParsePage(pageRaw)
	if err != nil {
		return nil, nil, err
	}

	if detail == models.DetailShort {
		var projected []models.CourseShort
		if !s.cache.Get(ctx, courseCacheKeyShort, &projected) {
			courses, err := s.repo.List(ctx)
			if err != nil {
				return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
			}
			projected = make([]models.CourseShort, len(courses))
			for i, course := range courses {
				projected[i] = course.Short()
			}
			s.cache.Set(ctx, courseCacheKeyShort, projected)
		}
		return paginateToData(projected, page, s.pageSize)
	}

	var projected []models.CourseFull
	if !s.cache.Get(ctx, courseCacheKeyFull, &projected) {
		courses, err := s.repo.List(ctx)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
		}
		projected = make([]models.CourseFull, len(courses))
		for i, course := range courses {
			instructors, err := s.instructorSummaries(ctx, course.ID)
			if err != nil {
				return nil, nil, err
			}
			projected[i] = course.Full(instructors)
		}
		s.cache.Set(ctx, courseCacheKeyFull, projected)
	}
	return paginateToData(projected, page, s.pageSize)
}

// Get returns the full projection of one course.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseFull, error) {
	course, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	instructors, err := s.instructorSummaries(ctx, id)
	if err != nil {
		return nil, err
	}
	full := course.Full(instructors)
	return &full, nil
}

// Create validates and stores a new course.
func (s *CourseService) Create(ctx context.Context, body map[string]interface{}) (*models.Course, error) {
	if err := courseFields.Validate(body, true); err != nil {
		return nil, err
	}

	title, err := stringField(body, "title")
	if err != nil {
		return nil, err
	}
	days, err := validate.Days(body["days"], s.allowedDays)
	if err != nil {
		return nil, err
	}
	window, err := s.parseWindow(body)
	if err != nil {
		return nil, err
	}
	if err := s.bounds.Validate(window); err != nil {
		return nil, err
	}
	var description string
	if _, ok := body["description"]; ok {
		if description, err = stringField(body, "description"); err != nil {
			return nil, err
		}
	}

	course := &models.Course{
		Title:       title,
		Days:        strings.Join(days, ","),
		StartTime:   window.Start,
		EndTime:     window.End,
		Description: description,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.cache.Invalidate(ctx, courseCachePattern)
	s.logger.Info("course created", zap.Int64("id", course.ID))
	return course, nil
}

// Edit applies the submitted subset of fields to an existing course. When
// only one time endpoint is submitted the other is taken from the stored
// record before the range check runs.
func (s *CourseService) Edit(ctx context.Context, id int64, body map[string]interface{}) (*models.Course, error) {
	course, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := courseFields.Validate(body, false); err != nil {
		return nil, err
	}

	if _, ok := body["title"]; ok {
		title, err := stringField(body, "title")
		if err != nil {
			return nil, err
		}
		course.Title = title
	}
	if _, ok := body["days"]; ok {
		days, err := validate.Days(body["days"], s.allowedDays)
		if err != nil {
			return nil, err
		}
		course.Days = strings.Join(days, ",")
	}
	if _, ok := body["description"]; ok {
		description, err := stringField(body, "description")
		if err != nil {
			return nil, err
		}
		course.Description = description
	}

	_, hasStart := body["start_time"]
	_, hasEnd := body["end_time"]
	if hasStart || hasEnd {
		window := schedule.Window{Start: course.StartTime, End: course.EndTime}
		if hasStart {
			raw, err := stringField(body, "start_time")
			if err != nil {
				return nil, err
			}
			if window.Start, err = schedule.ParseClock(raw); err != nil {
				return nil, err
			}
		}
		if hasEnd {
			raw, err := stringField(body, "end_time")
			if err != nil {
				return nil, err
			}
			if window.End, err = schedule.ParseClock(raw); err != nil {
				return nil, err
			}
		}
		if err := s.bounds.Validate(window); err != nil {
			return nil, err
		}
		course.StartTime = window.Start
		course.EndTime = window.End
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}

	s.cache.Invalidate(ctx, courseCachePattern)
	return course, nil
}

// Delete removes a course; its enrollments and assignments cascade.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	s.cache.Invalidate(ctx, courseCachePattern)
	return nil
}

// Students returns the course together with its enrolled students.
func (s *CourseService) Students(ctx context.Context, id int64) (*CourseWithStudents, error) {
	full, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.ListStudents(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course students")
	}
	summaries := make([]models.PersonSummary, len(students))
	for i, student := range students {
		summaries[i] = student.Summary()
	}
	return &CourseWithStudents{Course: *full, Students: summaries}, nil
}

// Instructors returns the course together with its assigned instructors.
func (s *CourseService) Instructors(ctx context.Context, id int64) (*CourseWithInstructors, error) {
	course, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	instructors, err := s.instructorSummaries(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CourseWithInstructors{Course: course.Full(instructors), Instructors: instructors}, nil
}

func (s *CourseService) parseWindow(body map[string]interface{}) (schedule.Window, error) {
	startRaw, err := stringField(body, "start_time")
	if err != nil {
		return schedule.Window{}, err
	}
	start, err := schedule.ParseClock(startRaw)
	if err != nil {
		return schedule.Window{}, err
	}
	endRaw, err := stringField(body, "end_time")
	if err != nil {
		return schedule.Window{}, err
	}
	end, err := schedule.ParseClock(endRaw)
	if err != nil {
		return schedule.Window{}, err
	}
	return schedule.Window{Start: start, End: end}, nil
}

func (s *CourseService) instructorSummaries(ctx context.Context, courseID int64) ([]models.PersonSummary, error) {
	instructors, err := s.repo.ListInstructors(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course instructors")
	}
	summaries := make([]models.PersonSummary, len(instructors))
	for i, instructor := range instructors {
		summaries[i] = instructor.Summary()
	}
	return summaries, nil
}

func (s *CourseService) find(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoRecord, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}
