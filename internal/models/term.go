package models

// Term models an academic term (e.g. "1st Semester").
type Term struct {
	ID   int64  `db:"term_id" json:"term_id"`
	Name string `db:"term_name" json:"term_name"`
}
