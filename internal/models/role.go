package models

import "time"

// Role is a named capability (Dean, Scheduler, Proctor, ...).
type Role struct {
	ID   int64  `db:"role_id" json:"role_id"`
	Name string `db:"role_name" json:"role_name"`
}

// UserRole is a time-bounded assignment of a role to a user, optionally
// scoped to a college and department. Overlapping validity windows are not
// prevented; the frontend resolves the effective role.
type UserRole struct {
	ID             int64      `db:"user_role_id" json:"user_role_id"`
	RoleID         int64      `db:"role_id" json:"role_id"`
	UserID         int64      `db:"user_id" json:"user_id"`
	CollegeID      *string    `db:"college_id" json:"college_id,omitempty"`
	DepartmentID   *string    `db:"department_id" json:"department_id,omitempty"`
	Status         *string    `db:"status" json:"status,omitempty"`
	DateStart      *time.Time `db:"date_start" json:"date_start,omitempty"`
	DateEnded      *time.Time `db:"date_ended" json:"date_ended,omitempty"`
	CreatedAt      *time.Time `db:"created_at" json:"created_at,omitempty"`
	RoleName       *string    `db:"role_name" json:"role_name,omitempty"`
	CollegeName    *string    `db:"college_name" json:"college_name,omitempty"`
	DepartmentName *string    `db:"department_name" json:"department_name,omitempty"`
	UserFullName   *string    `db:"user_full_name" json:"user_full_name,omitempty"`
}

// UserRoleFilter narrows user-role listings.
type UserRoleFilter struct {
	UserID *int64
	RoleID *int64
}

// UserRoleHistory is an append-only snapshot of a user-role change. History
// rows are never updated or deleted.
type UserRoleHistory struct {
	ID           int64      `db:"history_id" json:"history_id"`
	UserRoleID   int64      `db:"user_role_id" json:"user_role_id"`
	UserID       int64      `db:"user_id" json:"user_id"`
	RoleID       *int64     `db:"role_id" json:"role_id,omitempty"`
	CollegeID    *string    `db:"college_id" json:"college_id,omitempty"`
	DepartmentID *string    `db:"department_id" json:"department_id,omitempty"`
	DateStart    *time.Time `db:"date_start" json:"date_start,omitempty"`
	DateEnded    *time.Time `db:"date_ended" json:"date_ended,omitempty"`
	Status       *string    `db:"status" json:"status,omitempty"`
	Action       *string    `db:"action" json:"action,omitempty"`
	ChangedAt    time.Time  `db:"changed_at" json:"changed_at"`
}
