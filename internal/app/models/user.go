package models

import (
	"strings"
	"time"
)

// AuthProvider identifies how a user signed up.
type AuthProvider string

const (
	ProviderPassword AuthProvider = "password"
	ProviderGoogle   AuthProvider = "google"
)

// SyntheticUIDPrefix marks identities minted by the admin AI lab. Synthetic
// identities have no users row and never receive point awards.
const SyntheticUIDPrefix = "ai-"

// User represents a registered member of the community.
type User struct {
	UID          string       `json:"uid"`
	DisplayName  string       `json:"displayName"`
	PhotoURL     string       `json:"photoURL"`
	Points       int          `json:"points"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Provider     AuthProvider `json:"-"`
	ProviderID   *string      `json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// IsSyntheticUID reports whether a uid belongs to an AI-generated author.
func IsSyntheticUID(uid string) bool {
	return uid == "ai" || strings.HasPrefix(uid, SyntheticUIDPrefix)
}
