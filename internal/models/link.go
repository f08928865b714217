package models

// Enrollment binds a student to a course. Links are created through the
// duplicate/conflict gate and deleted by id; they are never edited.
type Enrollment struct {
	ID        int64 `db:"id" json:"id"`
	CourseID  int64 `db:"course_id" json:"course_id"`
	StudentID int64 `db:"student_id" json:"student_id"`
}

// Assignment binds an instructor to a course to teach it.
type Assignment struct {
	ID           int64 `db:"id" json:"id"`
	CourseID     int64 `db:"course_id" json:"course_id"`
	InstructorID int64 `db:"instructor_id" json:"instructor_id"`
}

// LinkWindow carries the course interval behind one of a person's existing
// links, as loaded for the conflict gate.
type LinkWindow struct {
	CourseID  int64 `db:"course_id"`
	StartTime int   `db:"start_time"`
	EndTime   int   `db:"end_time"`
}
