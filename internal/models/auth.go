package models

import "github.com/golang-jwt/jwt/v5"

// Permission scopes accepted by the mutating routes.
const (
	ScopeManageStudents    = "manage:students"
	ScopeManageInstructors = "manage:instructors"
	ScopeManageCourses     = "manage:courses"
	ScopeManageEnrollments = "manage:enrollments"
	ScopeManageAssignments = "manage:assignments"
)

// Claims is the JWT payload for access tokens issued by the identity
// provider. Scopes gate the mutating operations.
type Claims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// HasScope reports whether the token carries the given scope.
func (c *Claims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
