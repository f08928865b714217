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

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	ListCourses(ctx context.Context, studentID int64) ([]models.Course, error)
}

// studentFields is the accepted request body shape for students.
var studentFields = fieldset.Set{
	{Name: "name", Required: true},
	{Name: "email", Required: true},
	{Name: "phone", Required: true},
}

// StudentWithCourses is the person-with-courses projection.
type StudentWithCourses struct {
	Student models.StudentFull  `json:"student"`
	Courses []models.CourseFull `json:"courses"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo     studentRepository
	pageSize int
	logger   *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, pageSize int, logger *zap.Logger) *StudentService {
	if pageSize <= 0 {
		pageSize = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, pageSize: pageSize, logger: logger}
}

// List returns projected students and pagination metadata.
func (s *StudentService) List(ctx context.Context, detailRaw, pageRaw string) (interface{}, *models.Pagination, error) {
	detail, err := models.ParseDetail(detailRaw)
	if err != nil {
		return nil, nil, err
	}
	page, _, err := ParsePage(pageRaw)
	if err != nil {
		return nil, nil, err
	}

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	if detail == models.DetailShort {
		projected := make([]models.StudentShort, len(students))
		for i, student := range students {
			projected[i] = student.Short()
		}
		return paginateToData(projected, page, s.pageSize)
	}

	projected := make([]models.StudentFull, len(students))
	for i, student := range students {
		projected[i] = student.Full()
	}
	return paginateToData(projected, page, s.pageSize)
}

// Get returns the full projection of one student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentFull, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	full := student.Full()
	return &full, nil
}

// Create validates and stores a new student.
func (s *StudentService) Create(ctx context.Context, body map[string]interface{}) (*models.Student, error) {
	if err := studentFields.Validate(body, true); err != nil {
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

	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	student := &models.Student{Name: name, Email: email, Phone: phone}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.logger.Info("student created", zap.Int64("id", student.ID))
	return student, nil
}

// Edit applies the submitted subset of fields to an existing student.
func (s *StudentService) Edit(ctx context.Context, id int64, body map[string]interface{}) (*models.Student, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := studentFields.Validate(body, false); err != nil {
		return nil, err
	}

	if _, ok := body["name"]; ok {
		name, err := stringField(body, "name")
		if err != nil {
			return nil, err
		}
		student.Name = name
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
		student.Email = email
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
		student.Phone = phone
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student; their enrollments cascade.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

// Courses returns the student together with the courses they are enrolled in.
func (s *StudentService) Courses(ctx context.Context, id int64) (*StudentWithCourses, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.ListCourses(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student courses")
	}

	projected := make([]models.CourseFull, len(courses))
	for i, course := range courses {
		projected[i] = course.Full(nil)
	}
	return &StudentWithCourses{Student: student.Full(), Courses: projected}, nil
}

func (s *StudentService) find(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoRecord, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

func (s *StudentService) checkEmailFree(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return appErrors.ErrUniqueEmail
	}
	return nil
}
