// internal/domain/models/follow.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow is a directed edge: FollowerID follows FolloweeID.
type Follow struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FollowerID primitive.ObjectID `bson:"follower_id" json:"followerId"`
	FolloweeID primitive.ObjectID `bson:"followee_id" json:"followeeId"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
