package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is a memory shared by a user. Likes holds user id strings and is
// treated as a set; Comments only grows.
type Post struct {
	ID           bson.ObjectID `json:"_id"          bson:"_id,omitempty"`
	Title        string        `json:"title"        bson:"title"`
	Message      string        `json:"message"      bson:"message"`
	Name         string        `json:"name"         bson:"name"`
	Creator      string        `json:"creator"      bson:"creator"`
	Tags         []string      `json:"tags"         bson:"tags"`
	SelectedFile string        `json:"selectedFile" bson:"selectedFile"`
	Likes        []string      `json:"likes"        bson:"likes"`
	Comments     []string      `json:"comments"     bson:"comments"`
	CreatedAt    time.Time     `json:"createdAt"    bson:"createdAt"`
}

// Normalize replaces nil slices so they serialize as [] rather than null.
func (p *Post) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	if p.Comments == nil {
		p.Comments = []string{}
	}
}

// LikedBy reports whether userID is in the likers set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
