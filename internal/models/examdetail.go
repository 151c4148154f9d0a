package models

import "time"

// ExamDetail is one scheduled exam sitting: the room, modality and proctor
// assignment for a course section inside an exam period. College and building
// names are denormalised copies written at scheduling time.
type ExamDetail struct {
	ID             int64      `db:"examdetails_id" json:"examdetails_id"`
	CourseID       string     `db:"course_id" json:"course_id"`
	ProgramID      string     `db:"program_id" json:"program_id"`
	RoomID         string     `db:"room_id" json:"room_id"`
	ModalityID     int64      `db:"modality_id" json:"modality_id"`
	ProctorID      *int64     `db:"proctor_id" json:"proctor_id,omitempty"`
	ExamPeriodID   int64      `db:"examperiod_id" json:"examperiod_id"`
	Duration       *string    `db:"exam_duration" json:"exam_duration,omitempty"`
	StartTime      *time.Time `db:"exam_start_time" json:"exam_start_time,omitempty"`
	EndTime        *time.Time `db:"exam_end_time" json:"exam_end_time,omitempty"`
	ProctorTimeIn  *time.Time `db:"proctor_timein" json:"proctor_timein,omitempty"`
	ProctorTimeOut *time.Time `db:"proctor_timeout" json:"proctor_timeout,omitempty"`
	SectionName    *string    `db:"section_name" json:"section_name,omitempty"`
	AcademicYear   *string    `db:"academic_year" json:"academic_year,omitempty"`
	Semester       *string    `db:"semester" json:"semester,omitempty"`
	Category       *string    `db:"exam_category" json:"exam_category,omitempty"`
	PeriodLabel    *string    `db:"exam_period" json:"exam_period,omitempty"`
	ExamDate       *string    `db:"exam_date" json:"exam_date,omitempty"`
	CollegeName    *string    `db:"college_name" json:"college_name,omitempty"`
	BuildingName   *string    `db:"building_name" json:"building_name,omitempty"`
	InstructorID   *int64     `db:"instructor_id" json:"instructor_id,omitempty"`
	RoomName       *string    `db:"room_name" json:"room_name,omitempty"`
	ProctorName    *string    `db:"proctor_name" json:"proctor_name,omitempty"`
}

// ExamDetailFilter supports the exact-match query parameters of the exam
// detail list endpoint.
type ExamDetailFilter struct {
	RoomID   string
	ExamDate string
	Page     int
	PageSize int
}
