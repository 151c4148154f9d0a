package models

import (
	"strings"
	"time"
)

// User represents an account stored in the users table. Password hashes are
// only populated by the reset flow; login is delegated to the external
// identity provider.
type User struct {
	ID            int64      `db:"user_id" json:"user_id"`
	FirstName     string     `db:"first_name" json:"first_name"`
	MiddleName    *string    `db:"middle_name" json:"middle_name,omitempty"`
	LastName      string     `db:"last_name" json:"last_name"`
	Email         string     `db:"email_address" json:"email_address"`
	ContactNumber *string    `db:"contact_number" json:"contact_number,omitempty"`
	AvatarURL     *string    `db:"avatar_url" json:"avatar_url,omitempty"`
	Status        *string    `db:"status" json:"status,omitempty"`
	UUID          *string    `db:"user_uuid" json:"user_uuid,omitempty"`
	PasswordHash  *string    `db:"password_hash" json:"-"`
	CreatedAt     *time.Time `db:"created_at" json:"created_at,omitempty"`
}

// FullName renders "First M. Last" with an abbreviated middle name.
func (u User) FullName() string {
	middle := ""
	if u.MiddleName != nil && *u.MiddleName != "" {
		middle = " " + string([]rune(*u.MiddleName)[0]) + "."
	}
	return strings.TrimSpace(u.FirstName + middle + " " + u.LastName)
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
