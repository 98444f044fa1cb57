package domain

import "time"

// Post is a blog entry owned by a user.
type Post struct {
	ID          string
	Title       string
	Description string
	UserID      string
	AuthorName  string
	AuthorEmail string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
