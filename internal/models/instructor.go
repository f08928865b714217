package models

// Instructor represents an instructor record.
type Instructor struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
	Bio   string `db:"bio" json:"bio"`
}

// InstructorFull is the full projection of an instructor.
type InstructorFull struct {
	UID   int64  `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
}

// InstructorShort is the short projection of an instructor.
type InstructorShort struct {
	UID  int64  `json:"uid"`
	Name string `json:"name"`
}

// Full projects the instructor with all display fields.
func (i Instructor) Full() InstructorFull {
	return InstructorFull{UID: i.ID, Name: i.Name, Email: i.Email, Phone: i.Phone, Bio: i.Bio}
}

// Short projects the instructor to identity plus display name.
func (i Instructor) Short() InstructorShort {
	return InstructorShort{UID: i.ID, Name: i.Name}
}

// Summary projects the instructor into the related-entity form.
func (i Instructor) Summary() PersonSummary {
	return PersonSummary{UID: i.ID, Name: i.Name, Email: i.Email}
}
