package models

// Student represents a student record. Phone is stored in the normalized
// bare-digit form.
type Student struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
}

// StudentFull is the full projection of a student.
type StudentFull struct {
	UID   int64  `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// StudentShort is the short projection of a student.
type StudentShort struct {
	UID  int64  `json:"uid"`
	Name string `json:"name"`
}

// Full projects the student with all display fields.
func (s Student) Full() StudentFull {
	return StudentFull{UID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone}
}

// Short projects the student to identity plus display name.
func (s Student) Short() StudentShort {
	return StudentShort{UID: s.ID, Name: s.Name}
}

// Summary projects the student into the related-entity form.
func (s Student) Summary() PersonSummary {
	return PersonSummary{UID: s.ID, Name: s.Name, Email: s.Email}
}
