// internal/domain/models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses. Pending is only ever set by apply; companies move
// an application between shortlisted and rejected as often as they like.
const (
	ApplicationPending     = "pending"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
)

// ApplicationStatuses lists every stored status value.
var ApplicationStatuses = []string{ApplicationPending, ApplicationShortlisted, ApplicationRejected}

// Application links one student to one job.
type Application struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID primitive.ObjectID `bson:"student_id" json:"studentId"`
	JobID     primitive.ObjectID `bson:"job_id" json:"jobId"`
	Status    string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsSettableStatus reports whether status may be set by a company.
// Pending is excluded: it is the initial state and cannot be re-entered.
func IsSettableStatus(status string) bool {
	return status == ApplicationShortlisted || status == ApplicationRejected
}
