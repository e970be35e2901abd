// Package identity holds the resolved identity that scopes every read and
// write. It is passed explicitly to the sync layer and the ledger.
package identity

import "strings"

// Profile mirrors the identity provider's view of a user.
type Profile struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// FirstName returns the first word of the display name, or "Friend".
func (p Profile) FirstName() string {
	first, _, _ := strings.Cut(p.DisplayName, " ")
	if first == "" {
		return "Friend"
	}

	return first
}

// Identity is the owner of a session.
type Identity struct {
	Profile Profile
	Demo    bool
}

// UserID is the owning-user identifier written on every record.
func (i Identity) UserID() string {
	return i.Profile.UID
}

func New(p Profile) Identity {
	return Identity{Profile: p}
}

const (
	DemoUserID      = "demo-user-id"
	DemoEmail       = "demo@aapnaincom.com"
	DemoDisplayName = "Guest Explorer"
)

// Demo is the fixed placeholder identity used in demo mode.
func Demo() Identity {
	return Identity{
		Profile: Profile{
			UID:         DemoUserID,
			Email:       DemoEmail,
			DisplayName: DemoDisplayName,
		},
		Demo: true,
	}
}
