package entity

import (
	"time"
)

type Measurements struct {
	Waist  float64 `json:"waist" firestore:"waist"`
	Height float64 `json:"height" firestore:"height"`
	Hips   float64 `json:"hips" firestore:"hips"`
	Bust   float64 `json:"bust" firestore:"bust"`
}

type Contact struct {
	Phone    string `json:"phone" firestore:"phone"`
	Whatsapp string `json:"whatsapp" firestore:"whatsapp"`
	Telegram string `json:"telegram" firestore:"telegram"`
}

type Listing struct {
	ID          string   `json:"id" firestore:"id"`
	Name        string   `json:"name" firestore:"name"`
	Age         int      `json:"age" firestore:"age"`
	Price       float64  `json:"price" firestore:"price"`
	Description string   `json:"description" firestore:"description"`
	Locations   []string `json:"locations" firestore:"locations"`

	// Image is the primary media URL. Images always contains Image and never
	// holds duplicates; same for Videos.
	Image  string   `json:"image" firestore:"image"`
	Images []string `json:"images" firestore:"images"`
	Videos []string `json:"videos" firestore:"videos"`

	Measurements Measurements `json:"measurements" firestore:"measurements"`
	Contact      Contact      `json:"contact" firestore:"contact"`

	// Denormalized counters. LikesCount is best-effort and may drift from the
	// like record set; the like records are ground truth. CommentsCount is not
	// maintained by comment creation.
	LikesCount    int64 `json:"likes_count" firestore:"likesCount"`
	CommentsCount int64 `json:"comments_count" firestore:"commentsCount"`
	Views         int64 `json:"views" firestore:"views"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// LikedListing is the denormalized view served to clients: the listing plus
// whether the current user has a like record for it. Liked never lives in the
// store.
type LikedListing struct {
	Listing
	Liked bool `json:"liked" firestore:"-"`
}
