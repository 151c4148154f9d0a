package models

import (
	"time"

	"github.com/lib/pq"
)

// Modality is the configured exam format for a course section: delivery type,
// required room type and candidate rooms proposed by the course leader.
type Modality struct {
	ID            int64          `db:"modality_id" json:"modality_id"`
	Type          string         `db:"modality_type" json:"modality_type"`
	RoomType      string         `db:"room_type" json:"room_type"`
	Remarks       *string        `db:"modality_remarks" json:"modality_remarks,omitempty"`
	CourseID      string         `db:"course_id" json:"course_id"`
	ProgramID     string         `db:"program_id" json:"program_id"`
	RoomID        *string        `db:"room_id" json:"room_id,omitempty"`
	UserID        int64          `db:"user_id" json:"user_id"`
	SectionName   *string        `db:"section_name" json:"section_name,omitempty"`
	PossibleRooms pq.StringArray `db:"possible_rooms" json:"possible_rooms"`
	CreatedAt     *time.Time     `db:"created_at" json:"created_at,omitempty"`
}

// ModalityFilter supports the exact-match query parameters of the modality
// list endpoint.
type ModalityFilter struct {
	CourseID    string
	ProgramID   string
	SectionName string
	Type        string
	RoomType    string
	Page        int
	PageSize    int
}
