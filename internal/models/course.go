package models

import (
	"strings"

	"github.com/registrar-labs/course-registry-api/internal/schedule"
)

// Course represents a course record. Days is the comma-joined canonical day
// list; StartTime and EndTime are minutes since midnight.
type Course struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Days        string `db:"days" json:"days"`
	StartTime   int    `db:"start_time" json:"start_time"`
	EndTime     int    `db:"end_time" json:"end_time"`
	Description string `db:"description" json:"description"`
}

// DayList splits the stored day string back into the canonical list.
func (c Course) DayList() []string {
	if c.Days == "" {
		return nil
	}
	return strings.Split(c.Days, ",")
}

// CourseFull is the full projection of a course, including the instructors
// assigned to teach it and human-readable times.
type CourseFull struct {
	UID         int64           `json:"uid"`
	Title       string          `json:"title"`
	Instructors []PersonSummary `json:"instructors"`
	Days        []string        `json:"days"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	Description string          `json:"description"`
}

// CourseShort is the short projection of a course.
type CourseShort struct {
	UID   int64  `json:"uid"`
	Title string `json:"title"`
}

// Full projects the course with display fields, formatted times and the
// provided instructor summaries.
func (c Course) Full(instructors []PersonSummary) CourseFull {
	if instructors == nil {
		instructors = []PersonSummary{}
	}
	return CourseFull{
		UID:         c.ID,
		Title:       c.Title,
		Instructors: instructors,
		Days:        c.DayList(),
		StartTime:   schedule.FormatMinutes(c.StartTime),
		EndTime:     schedule.FormatMinutes(c.EndTime),
		Description: c.Description,
	}
}

// Short projects the course to identity plus title.
func (c Course) Short() CourseShort {
	return CourseShort{UID: c.ID, Title: c.Title}
}
