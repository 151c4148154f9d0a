package models

// Section is one offering of a course for a program and term.
type Section struct {
	ID          int64   `db:"section_id" json:"section_id"`
	CourseID    string  `db:"course_id" json:"course_id"`
	ProgramID   string  `db:"program_id" json:"program_id"`
	Name        string  `db:"section_name" json:"section_name"`
	Capacity    int     `db:"number_of_students" json:"number_of_students"`
	YearLevel   string  `db:"year_level" json:"year_level"`
	TermID      int64   `db:"term_id" json:"term_id"`
	UserID      *int64  `db:"user_id" json:"user_id,omitempty"`
	CourseName  *string `db:"course_name" json:"course_name,omitempty"`
	ProgramName *string `db:"program_name" json:"program_name,omitempty"`
	TermName    *string `db:"term_name" json:"term_name,omitempty"`
}

// SectionFilter narrows section listings.
type SectionFilter struct {
	CourseID  string
	ProgramID string
	TermID    *int64
	Page      int
	PageSize  int
}
