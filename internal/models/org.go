package models

// College is a top-level academic unit identified by a short code (e.g. "CCS").
type College struct {
	ID   string `db:"college_id" json:"college_id"`
	Name string `db:"college_name" json:"college_name"`
}

// Department belongs to a college.
type Department struct {
	ID          string  `db:"department_id" json:"department_id"`
	Name        *string `db:"department_name" json:"department_name,omitempty"`
	CollegeID   *string `db:"college_id" json:"college_id,omitempty"`
	CollegeName *string `db:"college_name" json:"college_name,omitempty"`
}

// Program belongs to a department.
type Program struct {
	ID             string  `db:"program_id" json:"program_id"`
	Name           string  `db:"program_name" json:"program_name"`
	DepartmentID   string  `db:"department_id" json:"department_id"`
	DepartmentName *string `db:"department_name" json:"department_name,omitempty"`
}
