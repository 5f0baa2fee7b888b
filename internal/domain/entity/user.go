package entity

import (
	"time"
)

// User mirrors the identity provider's record on every sign-in. Username is
// empty until the user completes onboarding; SuggestedUsername is computed
// once at profile creation and never reassigned.
//
// Role is a display hint only. Authorization always comes from the signed
// admin claim on the ID token, never from this field.
type User struct {
	ID                string    `json:"id" firestore:"id"`
	Email             string    `json:"email" firestore:"email"`
	DisplayName       string    `json:"display_name" firestore:"displayName"`
	PhotoURL          string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Username          string    `json:"username,omitempty" firestore:"username"`
	SuggestedUsername string    `json:"suggested_username,omitempty" firestore:"suggestedUsername"`
	Role              string    `json:"role" firestore:"role"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) HasHandle() bool {
	return u.Username != ""
}
