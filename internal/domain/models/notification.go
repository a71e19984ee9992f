// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotifyApplicationReceived     = "application_received"
	NotifyApplicationStatusUpdate = "application_status_update"
	NotifyPostLike                = "post_like"
	NotifyPostComment             = "post_comment"
	NotifyNewFollower             = "new_follower"
	NotifyAnnouncement            = "announcement"
)

var NotificationTypes = []string{
	NotifyApplicationReceived,
	NotifyApplicationStatusUpdate,
	NotifyPostLike,
	NotifyPostComment,
	NotifyNewFollower,
	NotifyAnnouncement,
}

// Notification is a user-facing event record. Message is rendered when the
// record is written and never recomputed. IsRead only ever flips to true.
type Notification struct {
	ID                   primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipientID          primitive.ObjectID  `bson:"recipient_id" json:"recipientId"`
	SenderID             *primitive.ObjectID `bson:"sender_id,omitempty" json:"senderId,omitempty"`
	Message              string              `bson:"message" json:"message"`
	Type                 string              `bson:"type" json:"type"`
	RelatedJobID         *primitive.ObjectID `bson:"related_job_id,omitempty" json:"relatedJobId,omitempty"`
	RelatedApplicationID *primitive.ObjectID `bson:"related_application_id,omitempty" json:"relatedApplicationId,omitempty"`
	RelatedPostID        *primitive.ObjectID `bson:"related_post_id,omitempty" json:"relatedPostId,omitempty"`
	IsRead               bool                `bson:"is_read" json:"isRead"`
	CreatedAt            time.Time           `bson:"created_at" json:"createdAt"`
}
