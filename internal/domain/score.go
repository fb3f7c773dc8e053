package domain

// Score is a flat association record relating a user and a game to a
// numeric result. A zero ID means the score has not been persisted yet.
type Score struct {
	ID     int64 `json:"id"`
	Score  int64 `json:"score"`
	UserID int64 `json:"user_id"`
	GameID int64 `json:"game_id"`
}
