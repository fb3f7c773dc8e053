package domain

import "time"

// Game is a title users can register in their list. Games are shared
// entities: many users may reference the same game.
type Game struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
