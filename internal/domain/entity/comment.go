package entity

import (
	"time"
)

// Comment is a flat record in a listing's comments subcollection. ParentID is
// empty for a top-level comment and otherwise references a top-level comment
// in the same listing. Threads are two levels deep only: replies never gain
// replies of their own.
//
// AuthorUsername is captured at write time and stays frozen even if the
// author later changes their handle.
type Comment struct {
	ID             string    `json:"id" firestore:"id"`
	AuthorID       string    `json:"author_id" firestore:"authorId"`
	AuthorUsername string    `json:"author_username" firestore:"authorUsername"`
	Text           string    `json:"text" firestore:"text"`
	ParentID       string    `json:"parent_id,omitempty" firestore:"parentId"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

func (c *Comment) IsReply() bool {
	return c.ParentID != ""
}

// Thread is a top-level comment plus its direct replies, in the creation
// order they had in the source stream.
type Thread struct {
	Comment
	Replies []Comment `json:"replies"`
}
