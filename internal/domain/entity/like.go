package entity

import (
	"time"
)

// Like marks a listing as liked by a user. It lives at
// users/{uid}/likes/{listingID}; document existence is the liked state.
type Like struct {
	ListingID string    `json:"listing_id" firestore:"listingId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
