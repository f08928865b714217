package service

import "fmt"

// Success messages returned by the mutating operations.
const (
	MsgStudentCreated    = "student created"
	MsgInstructorCreated = "instructor created"
	MsgCourseCreated     = "course created"
	MsgEnrollmentCreated = "enrollment created"
	MsgAssignmentCreated = "assignment created"
)

// MsgUpdated formats the update confirmation for an entity.
func MsgUpdated(entity string, id int64) string {
	return fmt.Sprintf("updated %s with id: %d", entity, id)
}

// MsgDeleted formats the delete confirmation for an entity.
func MsgDeleted(entity string, id int64) string {
	return fmt.Sprintf("deleted %s with id: %d", entity, id)
}
