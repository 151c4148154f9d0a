package models

import "time"

// Availability is one proctor availability submission for a day and slot.
type Availability struct {
	ID       int64     `db:"availability_id" json:"availability_id"`
	Day      time.Time `db:"day" json:"day"`
	TimeSlot string    `db:"time_slot" json:"time_slot"`
	Status   string    `db:"status" json:"status"`
	Remarks  *string   `db:"remarks" json:"remarks,omitempty"`
	UserID   int64     `db:"user_id" json:"user_id"`
}

// AvailabilityFilter narrows availability listings.
type AvailabilityFilter struct {
	UserID *int64
}
