package domain

import "time"

// Commentary is a comment left by a user on a game.
type Commentary struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    *User     `json:"author,omitempty"`
	AuthorID  int64     `json:"author_id"`
	GameID    int64     `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentary creates a commentary authored by the user with the given id.
func NewCommentary(content string, authorID, gameID int64) *Commentary {
	return &Commentary{
		Content:   content,
		AuthorID:  authorID,
		GameID:    gameID,
		CreatedAt: time.Now().UTC(),
	}
}
