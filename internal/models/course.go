package models

// Course is a taught subject tied to a term. Instructors are attached through
// the course_users join table.
type Course struct {
	ID       string  `db:"course_id" json:"course_id"`
	Name     string  `db:"course_name" json:"course_name"`
	TermID   int64   `db:"term_id" json:"term_id"`
	TermName *string `db:"term_name" json:"term_name,omitempty"`
}

// CourseUser is one (course, user) assignment. The leader flag marks the
// instructor coordinating the course's exam preparations.
type CourseUser struct {
	CourseID   string  `db:"course_id" json:"course_id"`
	UserID     int64   `db:"user_id" json:"user_id"`
	CourseName *string `db:"course_name" json:"course_name,omitempty"`
	IsLeader   bool    `db:"is_leader" json:"is_leader"`
	FirstName  *string `db:"first_name" json:"-"`
	LastName   *string `db:"last_name" json:"-"`
}

// CourseDetail is the aggregate representation returned by course endpoints:
// the course row plus its assignments flattened into parallel lists.
type CourseDetail struct {
	CourseID        string   `json:"course_id"`
	CourseName      string   `json:"course_name"`
	TermID          int64    `json:"term_id"`
	TermName        *string  `json:"term_name"`
	UserIDs         []int64  `json:"user_ids"`
	Leaders         []int64  `json:"leaders"`
	InstructorNames []string `json:"instructor_names"`
}
