// internal/domain/models/favorite.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is a student's bookmark of a job. (student_id, job_id) is unique.
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID primitive.ObjectID `bson:"student_id" json:"studentId"`
	JobID     primitive.ObjectID `bson:"job_id" json:"jobId"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
