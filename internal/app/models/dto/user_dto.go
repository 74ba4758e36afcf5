package dto

import "time"

// UserResponse is the public projection of a user.
type UserResponse struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	Points      int       `json:"points"`
	Email       string    `json:"email,omitempty"`
	IsAdmin     bool      `json:"isAdmin,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProfileResponse adds the computed rank: the count of users with strictly
// more points, plus one. Two users with equal points share a rank value.
type ProfileResponse struct {
	UserResponse
	Rank int `json:"rank"`
}

// UpdateProfileRequest changes the caller's display name.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" binding:"required,min=2,max=64"`
}

// UpdateAvatarRequest replaces the caller's avatar. PhotoURL accepts a regular
// URL or an embedded data URI.
type UpdateAvatarRequest struct {
	PhotoURL string `json:"photoUrl" binding:"required"`
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Points      int    `json:"points"`
}
