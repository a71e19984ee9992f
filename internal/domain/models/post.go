// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media types a post attachment can have.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Post is social content authored by any user. Likes are stored as rows in
// post_likes; LikeCount is maintained alongside them.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID  primitive.ObjectID `bson:"author_id" json:"authorId"`
	Caption   string             `bson:"caption,omitempty" json:"caption,omitempty"`
	Media     *Media             `bson:"media,omitempty" json:"media,omitempty"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	LikeCount int64              `bson:"like_count" json:"likeCount"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Media is a single post attachment reference.
type Media struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"` // image | video
}

// Comment is one entry in a post's append-only comment list.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// PostLike is one (post, user) like edge.
type PostLike struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"postId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
