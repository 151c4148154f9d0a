package models

import "time"

// ExamPeriod is a calendar window during which exams for a term run,
// optionally scoped to a department and/or college.
type ExamPeriod struct {
	ID             int64     `db:"examperiod_id" json:"examperiod_id"`
	StartDate      time.Time `db:"start_date" json:"start_date"`
	EndDate        time.Time `db:"end_date" json:"end_date"`
	AcademicYear   string    `db:"academic_year" json:"academic_year"`
	Category       string    `db:"exam_category" json:"exam_category"`
	TermID         int64     `db:"term_id" json:"term_id"`
	DepartmentID   *string   `db:"department_id" json:"department_id,omitempty"`
	CollegeID      *string   `db:"college_id" json:"college_id,omitempty"`
	TermName       *string   `db:"term_name" json:"term_name,omitempty"`
	DepartmentName *string   `db:"department_name" json:"department_name,omitempty"`
	CollegeName    *string   `db:"college_name" json:"college_name,omitempty"`
}

// ReconcileInstruction is one entry of a bulk exam-period update: either
// assign a college to a date by copying an existing period, or remove the
// college's period on that date.
type ReconcileInstruction struct {
	StartDate       string `json:"start_date"`
	CollegeName     string `json:"college_name,omitempty"`
	CollegeToRemove string `json:"college_to_remove,omitempty"`
}
