package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/registrar-labs/course-registry-api/internal/fieldset"
	"github.com/registrar-labs/course-registry-api/internal/models"
	"github.com/registrar-labs/course-registry-api/internal/validate"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

type instructorRepository interface {
	List(ctx context.Context) ([]models.Instructor, error)
	FindByID(ctx context.Context, id int64) (*models.Instructor, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, instructor *models.Instructor) error
	Update(ctx context.Context, instructor *models.Instructor) error
	Delete(ctx context.Context, id int64) error
	ListCourses(ctx context.Context, instructorID int64) ([]models.Course, error)
}

// instructorFields is the accepted request body shape for instructors. Bio is
// the one optional field.
var instructorFields = fieldset.Set{
	{Name: "name", Required: true},
	{Name: "email", Required: true},
	{Name: "phone", Required: true},
	{Name: "bio", Required: false},
}

// InstructorWithCourses is the person-with-courses projection.
type InstructorWithCourses struct {
	Instructor models.InstructorFull `json:"instructor"`
	Courses    []models.CourseFull   `json:"courses"`
}

// InstructorService handles instructor use-cases. It holds a cache handle
// because the full course-list projection embeds instructor summaries, so
// instructor edits and deletes must purge the cached lists.
type InstructorService struct {
	repo     instructorRepository
	cache    *CacheService
	pageSize int
	logger   *zap.Logger
}

// NewInstructorService constructs the instructor service.
func NewInstructorService(repo instructorRepository, cache *CacheService, pageSize int, logger *zap.Logger) *InstructorService {
	if pageSize <= 0 {
		pageSize = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, cache: cache, pageSize: pageSize, logger: logger}
}

// List returns projected instructors and pagination metadata.
func (s *InstructorService) List(ctx context.Context, detailRaw, pageRaw string) (interface{}, *models.Pagination, error) {
	detail, err := models.ParseDetail(detailRaw)
	if err != nil {
		return nil, nil, err
	}
	page, _, err := ParsePage(pageRaw)
	if err != nil {
		return nil, nil, err
	}

	instructors, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}

	if detail == models.DetailShort {
		projected := make([]models.InstructorShort, len(instructors))
		for i, instructor := range instructors {
			projected[i] = instructor.Short()
		}
		return paginateToData(projected, page, s.pageSize)
	}

	projected := make([]models.InstructorFull, len(instructors))
	for i, instructor := range instructors {
		projected[i] = instructor.Full()
	}
	return paginateToData(projected, page, s.pageSize)
}

// Get returns the full projection of one instructor.
func (s *InstructorService) Get(ctx context.Context, id int64) (*models.InstructorFull, error) {
	instructor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	full := instructor.Full()
	return &full, nil
}

// Create validates and stores a new instructor.
func (s *InstructorService) Create(ctx context.Context, body map[string]interface{}) (*models.Instructor, error) {
	if err := instructorFields.Validate(body, true); err != nil {
		return nil, err
	}

	name, err := stringField(body, "name")
	if err != nil {
		return nil, err
	}
	emailRaw, err := stringField(body, "email")
	if err != nil {
		return nil, err
	}
	email, err := validate.Email(emailRaw)
	if err != nil {
		return nil, err
	}
	phoneRaw, err := stringField(body, "phone")
	if err != nil {
		return nil, err
	}
	phone, err := validate.Phone(phoneRaw)
	if err != nil {
		return nil, err
	}
	var bio string
	if _, ok := body["bio"]; ok {
		if bio, err = stringField(body, "bio"); err != nil {
			return nil, err
		}
	}

	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	instructor := &models.Instructor{Name: name, Email: email, Phone: phone, Bio: bio}
	if err := s.repo.Create(ctx, instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create instructor")
	}

	s.logger.Info("instructor created", zap.Int64("id", instructor.ID))
	return instructor, nil
}

// Edit applies the submitted subset of fields to an existing instructor.
func (s *InstructorService) Edit(ctx context.Context, id int64, body map[string]interface{}) (*models.Instructor, error) {
	instructor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := instructorFields.Validate(body, false); err != nil {
		return nil, err
	}

	if _, ok := body["name"]; ok {
		name, err := stringField(body, "name")
		if err != nil {
			return nil, err
		}
		instructor.Name = name
	}
	if _, ok := body["email"]; ok {
		emailRaw, err := stringField(body, "email")
		if err != nil {
			return nil, err
		}
		email, err := validate.Email(emailRaw)
		if err != nil {
			return nil, err
		}
		if err := s.checkEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		instructor.Email = email
	}
	if _, ok := body["phone"]; ok {
		phoneRaw, err := stringField(body, "phone")
		if err != nil {
			return nil, err
		}
		phone, err := validate.Phone(phoneRaw)
		if err != nil {
			return nil, err
		}
		instructor.Phone = phone
	}
	if _, ok := body["bio"]; ok {
		bio, err := stringField(body, "bio")
		if err != nil {
			return nil, err
		}
		instructor.Bio = bio
	}

	if err := s.repo.Update(ctx, instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update instructor")
	}
	s.cache.Invalidate(ctx, courseCachePattern)
	return instructor, nil
}

// Delete removes an instructor; their assignments cascade.
func (s *InstructorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete instructor")
	}
	s.cache.Invalidate(ctx, courseCachePattern)
	return nil
}

// Courses returns the instructor together with the courses they teach.
func (s *InstructorService) Courses(ctx context.Context, id int64) (*InstructorWithCourses, error) {
	instructor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.ListCourses(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor courses")
	}

	projected := make([]models.CourseFull, len(courses))
	for i, course := range courses {
		projected[i] = course.Full(nil)
	}
	return &InstructorWithCourses{Instructor: instructor.Full(), Courses: projected}, nil
}

func (s *InstructorService) find(ctx context.Context, id int64) (*models.Instructor, error) {
	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoRecord, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	return instructor, nil
}

func (s *InstructorService) checkEmailFree(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return appErrors.ErrUniqueEmail
	}
	return nil
}
