// Package notify writes user-facing notifications as side effects of other
// actions. Writes happen synchronously inside the triggering request, once,
// with no retry. A failed write is logged and dropped; it never fails or
// undoes the action that caused it.
package notify

import (
	"context"
	"fmt"

	notificationstore "github.com/dalemusser/fresherlink/internal/app/store/notifications"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Notifier struct {
	store *notificationstore.Store
	log   *zap.Logger
}

func New(store *notificationstore.Store, log *zap.Logger) *Notifier {
	return &Notifier{store: store, log: log}
}

func (n *Notifier) send(ctx context.Context, note models.Notification) {
	if _, err := n.store.Insert(ctx, note); err != nil {
		n.log.Warn("notification write failed",
			zap.Error(err),
			zap.String("type", note.Type),
			zap.String("recipient_id", note.RecipientID.Hex()))
	}
}

func ptr(id primitive.ObjectID) *primitive.ObjectID { return &id }

// ApplicationReceived tells a company that a student applied to its job.
func (n *Notifier) ApplicationReceived(ctx context.Context, job models.Job, app models.Application, studentName string) {
	n.send(ctx, models.Notification{
		RecipientID:          job.CompanyID,
		SenderID:             ptr(app.StudentID),
		Type:                 models.NotifyApplicationReceived,
		Message:              fmt.Sprintf("%s applied for your job %q", studentName, job.Title),
		RelatedJobID:         ptr(job.ID),
		RelatedApplicationID: ptr(app.ID),
	})
}

// ApplicationStatusChanged tells a student that a company moved their
// application.
func (n *Notifier) ApplicationStatusChanged(ctx context.Context, job models.Job, app models.Application, companyName string) {
	n.send(ctx, models.Notification{
		RecipientID:          app.StudentID,
		SenderID:             ptr(job.CompanyID),
		Type:                 models.NotifyApplicationStatusUpdate,
		Message:              fmt.Sprintf("Your application for %q has been %s by %s", job.Title, app.Status, companyName),
		RelatedJobID:         ptr(job.ID),
		RelatedApplicationID: ptr(app.ID),
	})
}

// PostLiked tells a post's author about a like. Liking your own post is silent.
func (n *Notifier) PostLiked(ctx context.Context, post models.Post, likerID primitive.ObjectID, likerName string) {
	if post.AuthorID == likerID {
		return
	}
	n.send(ctx, models.Notification{
		RecipientID:   post.AuthorID,
		SenderID:      ptr(likerID),
		Type:          models.NotifyPostLike,
		Message:       likerName + " liked your post",
		RelatedPostID: ptr(post.ID),
	})
}

// PostCommented tells a post's author about a comment. Commenting on your
// own post is silent.
func (n *Notifier) PostCommented(ctx context.Context, post models.Post, commenterID primitive.ObjectID, commenterName string) {
	if post.AuthorID == commenterID {
		return
	}
	n.send(ctx, models.Notification{
		RecipientID:   post.AuthorID,
		SenderID:      ptr(commenterID),
		Type:          models.NotifyPostComment,
		Message:       commenterName + " commented on your post",
		RelatedPostID: ptr(post.ID),
	})
}

// NewFollower tells a user someone started following them.
func (n *Notifier) NewFollower(ctx context.Context, followeeID, followerID primitive.ObjectID, followerName string) {
	n.send(ctx, models.Notification{
		RecipientID: followeeID,
		SenderID:    ptr(followerID),
		Type:        models.NotifyNewFollower,
		Message:     followerName + " started following you",
	})
}

// Announce writes one announcement per recipient in a single batch. Unlike
// the side-effect notifications, the announcement is the action itself, so
// its error is returned.
func (n *Notifier) Announce(ctx context.Context, senderID primitive.ObjectID, recipients []primitive.ObjectID, message string) (int, error) {
	notes := make([]models.Notification, 0, len(recipients))
	for _, r := range recipients {
		notes = append(notes, models.Notification{
			RecipientID: r,
			SenderID:    ptr(senderID),
			Type:        models.NotifyAnnouncement,
			Message:     message,
		})
	}
	return n.store.InsertMany(ctx, notes)
}
