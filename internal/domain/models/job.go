// internal/domain/models/job.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job types.
const (
	JobTypeInternship = "internship"
	JobTypeFullTime   = "full-time"
)

// JobTypes is the canonical list used by validation and the collection schema.
var JobTypes = []string{JobTypeInternship, JobTypeFullTime}

// Job is a company-owned position listing.
type Job struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID    primitive.ObjectID `bson:"company_id" json:"companyId"`
	Title        string             `bson:"title" json:"title"`
	Type         string             `bson:"type" json:"type"`
	Description  string             `bson:"description" json:"description"`
	Requirements string             `bson:"requirements,omitempty" json:"requirements,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Salary       string             `bson:"salary,omitempty" json:"salary,omitempty"`
	Deadline     *time.Time         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	IsFeatured   bool               `bson:"is_featured" json:"isFeatured"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsValidJobType reports whether t is a known job type.
func IsValidJobType(t string) bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}
