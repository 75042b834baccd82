package model

import "time"

// UserRole represents the role of an account
type UserRole string

const (
	UserRoleUser  UserRole = "user"  // Default role
	UserRoleAdmin UserRole = "admin" // Back office access, moderation, site settings
)

// User represents an account
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Hash            *string    `json:"-"` // Never expose password hash
	ProfilePicture  *string    `json:"profilePicture,omitempty"`
	Bio             *string    `json:"bio,omitempty"`
	BannerURL       *string    `json:"bannerUrl,omitempty"`
	IsAdmin         bool       `json:"isAdmin"`
	IsBanned        bool       `json:"isBanned"`
	BanReason       *string    `json:"banReason,omitempty"`
	TempBannedUntil *time.Time `json:"tempBannedUntil,omitempty"`
	DiscordID       *string    `json:"discordId,omitempty"`
	Username        *string    `json:"username,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Role returns the stored role of the account
func (u *User) Role() UserRole {
	if u.IsAdmin {
		return UserRoleAdmin
	}
	return UserRoleUser
}

// IsTempBanned reports whether a temporary ban window is still open at now
func (u *User) IsTempBanned(now time.Time) bool {
	return u.TempBannedUntil != nil && u.TempBannedUntil.After(now)
}

// EffectiveBanned reports whether the account is permanently banned or
// inside an active temporary ban window
func (u *User) EffectiveBanned(now time.Time) bool {
	return u.IsBanned || u.IsTempBanned(now)
}

// HasPassword reports whether the account can sign in with a password
func (u *User) HasPassword() bool {
	return u.Hash != nil && *u.Hash != ""
}

// Clone returns a deep copy of the user
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Hash = cloneString(u.Hash)
	c.ProfilePicture = cloneString(u.ProfilePicture)
	c.Bio = cloneString(u.Bio)
	c.BannerURL = cloneString(u.BannerURL)
	c.BanReason = cloneString(u.BanReason)
	c.DiscordID = cloneString(u.DiscordID)
	c.Username = cloneString(u.Username)
	if u.TempBannedUntil != nil {
		t := *u.TempBannedUntil
		c.TempBannedUntil = &t
	}
	return &c
}

// Identity is the subset of account fields that decides the role
type Identity struct {
	Email    string
	Username string
}

// SignUpRequest represents an email/password registration
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SignInRequest represents an email/password sign-in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DiscordSyncRequest carries an identity resolved by the external OAuth provider
type DiscordSyncRequest struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
	DiscordID      string `json:"discordId"`
	Username       string `json:"username"`
}

// UpdateProfileRequest represents a partial profile update.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	BannerURL      *string `json:"bannerUrl,omitempty"`
}

// StartEmailChangeRequest begins an email change
type StartEmailChangeRequest struct {
	NewEmail string `json:"newEmail"`
}

// ChangeEmailRequest completes an email change
type ChangeEmailRequest struct {
	NewEmail          string `json:"newEmail"`
	OriginalEmailCode string `json:"originalEmailCode"`
	NewEmailCode      string `json:"newEmailCode"`
}

// AuthResult is the outcome of a successful sign-up, sign-in or sync
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// SetRoleRequest changes the stored role of an account
type SetRoleRequest struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
