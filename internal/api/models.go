package api

import (
	"time"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/playerhub/playerhub/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       int64  `json:"user_id"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh
// endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateUserRequest defines the payload for the user update endpoints.
// Absent fields leave the stored values untouched.
type UpdateUserRequest struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"          validate:"omitempty,email"`
	Password       *string `json:"password,omitempty"       validate:"omitempty,min=8,max=72"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	BannerPicture  *string `json:"banner_picture,omitempty"`
}

// toPatch converts the request into a domain patch.
func (r UpdateUserRequest) toPatch() *domain.UserPatch {
	return &domain.UserPatch{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		Bio:            r.Bio,
		ProfilePicture: r.ProfilePicture,
		BannerPicture:  r.BannerPicture,
	}
}

// GameResponse represents a game in user-facing payloads.
type GameResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID             int64          `json:"id"`
	Username       string         `json:"username"`
	Slug           string         `json:"slug"`
	Email          string         `json:"email"`
	Bio            string         `json:"bio,omitempty"`
	ProfilePicture string         `json:"profile_picture,omitempty"`
	BannerPicture  string         `json:"banner_picture,omitempty"`
	Games          []GameResponse `json:"games"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// IdentityResponse carries a single resolved identity attribute.
type IdentityResponse struct {
	ID   int64  `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// ScoreRequest defines the payload for score create/update endpoints.
type ScoreRequest struct {
	Score  int64 `json:"score"`
	UserID int64 `json:"user_id" validate:"required"`
	GameID int64 `json:"game_id" validate:"required"`
}

// ScoreResponse represents the response data for a score.
type ScoreResponse struct {
	ID     int64 `json:"id"`
	Score  int64 `json:"score"`
	UserID int64 `json:"user_id"`
	GameID int64 `json:"game_id"`
}

// CreateCommentaryRequest defines the payload for the commentary creation
// endpoint.
type CreateCommentaryRequest struct {
	Content string `json:"content" validate:"required,min=1"`
	GameID  int64  `json:"game_id" validate:"required"`
}

// CommentaryAuthor is the author projection embedded in commentary payloads.
type CommentaryAuthor struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Slug     string `json:"slug,omitempty"`
}

// CommentaryResponse represents the response data for a commentary.
type CommentaryResponse struct {
	ID        int64            `json:"id"`
	Content   string           `json:"content"`
	Author    CommentaryAuthor `json:"author"`
	GameID    int64            `json:"game_id"`
	CreatedAt time.Time        `json:"created_at"`
}

func userToResponse(user *domain.User) UserResponse {
	games := make([]GameResponse, 0, len(user.Games))
	for _, g := range user.Games {
		games = append(games, GameResponse{ID: g.ID, Name: g.Name})
	}
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Slug:           user.Slug,
		Email:          user.Email,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		BannerPicture:  user.BannerPicture,
		Games:          games,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func summariesToResponse(summaries []service.GameSummary) []GameResponse {
	games := make([]GameResponse, 0, len(summaries))
	for _, s := range summaries {
		games = append(games, GameResponse{ID: s.ID})
	}
	return games
}

func scoreToResponse(score *domain.Score) ScoreResponse {
	return ScoreResponse{
		ID:     score.ID,
		Score:  score.Score,
		UserID: score.UserID,
		GameID: score.GameID,
	}
}

func commentaryToResponse(commentary *domain.Commentary) CommentaryResponse {
	author := CommentaryAuthor{ID: commentary.AuthorID}
	if commentary.Author != nil {
		author.ID = commentary.Author.ID
		author.Username = commentary.Author.Username
		author.Slug = commentary.Author.Slug
	}
	return CommentaryResponse{
		ID:        commentary.ID,
		Content:   commentary.Content,
		Author:    author,
		GameID:    commentary.GameID,
		CreatedAt: commentary.CreatedAt,
	}
}
