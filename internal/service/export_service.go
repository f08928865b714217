package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/registrar-labs/course-registry-api/internal/models"
	"github.com/registrar-labs/course-registry-api/internal/schedule"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
	"github.com/registrar-labs/course-registry-api/pkg/export"
)

// Roster export formats.
const (
	RosterFormatCSV = "csv"
	RosterFormatPDF = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// RosterExport is a rendered roster file with its delivery metadata.
type RosterExport struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService renders course rosters to downloadable files.
type ExportService struct {
	courses courseRepository
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(courses courseRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{courses: courses, csv: csv, pdf: pdf, logger: logger}
}

// Roster builds the course roster (assigned instructors, then enrolled
// students) and renders it in the requested format. An empty format defaults
// to CSV.
func (s *ExportService) Roster(ctx context.Context, courseID int64, format string) (*RosterExport, error) {
	if format == "" {
		format = RosterFormatCSV
	}
	if format != RosterFormatCSV && format != RosterFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrBadFormat, fmt.Sprintf("%q is not a supported roster format", format))
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoRecord, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	instructors, err := s.courses.ListInstructors(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course instructors")
	}
	students, err := s.courses.ListStudents(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course students")
	}

	dataset := buildRosterDataset(instructors, students)
	title := fmt.Sprintf("Roster: %s (%s-%s)", course.Title,
		schedule.FormatMinutes(course.StartTime), schedule.FormatMinutes(course.EndTime))

	var payload []byte
	var contentType string
	switch format {
	case RosterFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case RosterFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}

	filename := fmt.Sprintf("roster-%d-%s.%s", course.ID, slugify(course.Title), format)
	return &RosterExport{Payload: payload, ContentType: contentType, Filename: filename}, nil
}

func buildRosterDataset(instructors []models.Instructor, students []models.Student) export.Dataset {
	rows := make([][]string, 0, len(instructors)+len(students))
	for _, instructor := range instructors {
		rows = append(rows, []string{"instructor", strconv.FormatInt(instructor.ID, 10), instructor.Name, instructor.Email})
	}
	for _, student := range students {
		rows = append(rows, []string{"student", strconv.FormatInt(student.ID, 10), student.Name, student.Email})
	}
	return export.Dataset{
		Headers: []string{"role", "uid", "name", "email"},
		Rows:    rows,
	}
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "course"
	}
	return slug
}
