package forum

import "time"

// Post is one visitor message on a team board.
type Post struct {
	ID        string
	TeamID    string
	Author    string
	Title     string
	Body      string
	CreatedAt time.Time
}
