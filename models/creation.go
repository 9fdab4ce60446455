package models

import (
	"encoding/json"
	"time"
)

/************************************************
/**** MARK: CREATION KINDS ****/
/************************************************/
const CREATION_KIND_ARTICLE = "article"
const CREATION_KIND_BLOG_TITLE = "blog-title"
const CREATION_KIND_IMAGE = "image"
const CREATION_KIND_RESUME_REVIEW = "resume-review"

// Creation is one persisted AI-generated or AI-edited artifact. Immutable
// after insert except the like set; Publish is fixed at creation time.
type Creation struct {
	ID      string `gorm:"primary_key" json:"id"`
	UserID  string `gorm:"not null;index" json:"user_id"`
	Kind    string `gorm:"column:type;not null;index" json:"type"`
	Prompt  string `gorm:"type:text" json:"prompt"`
	Content string `gorm:"type:text" json:"content"`
	Publish bool   `gorm:"not null;default:false" json:"publish"`

	// LikesRaw is the JSON-encoded like set as stored. Likes is the
	// hydrated view the API serves; the store keeps both in sync.
	LikesRaw string   `gorm:"column:likes;type:text;not null;default:'[]'" json:"-"`
	Likes    []string `gorm:"-" json:"likes"`

	CreatedAt *time.Time `json:"created_at"`
}

// HydrateLikes decodes LikesRaw into Likes. A broken or empty column
// hydrates to an empty set rather than failing a read.
func (c *Creation) HydrateLikes() {
	c.Likes = []string{}
	if c.LikesRaw == "" {
		return
	}
	var likes []string
	if err := json.Unmarshal([]byte(c.LikesRaw), &likes); err != nil {
		return
	}
	if likes != nil {
		c.Likes = likes
	}
}

// SetLikes encodes the given set into LikesRaw and mirrors it in Likes.
func (c *Creation) SetLikes(likes []string) {
	if likes == nil {
		likes = []string{}
	}
	b, _ := json.Marshal(likes)
	c.LikesRaw = string(b)
	c.Likes = likes
}

// HasLike reports set membership against the hydrated like set.
func (c *Creation) HasLike(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
