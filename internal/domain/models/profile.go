// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile kinds. A profile's kind always matches its owner's role.
const (
	ProfileKindStudent = "student"
	ProfileKindCompany = "company"
)

// Profile holds the extended attributes of exactly one user. Exactly one of
// Student or Company is set, selected by Kind.
type Profile struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"userId"`
	Kind    string             `bson:"kind" json:"kind"`
	Student *StudentProfile    `bson:"student,omitempty" json:"student,omitempty"`
	Company *CompanyProfile    `bson:"company,omitempty" json:"company,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// StudentProfile is the student shape of a profile.
type StudentProfile struct {
	Name        string   `bson:"name" json:"name"`
	NameCI      string   `bson:"name_ci" json:"-"`
	Institution string   `bson:"institution,omitempty" json:"institution,omitempty"`
	Department  string   `bson:"department,omitempty" json:"department,omitempty"`
	Bio         string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills      []string `bson:"skills" json:"skills"`
	Resume      *string  `bson:"resume" json:"resume"`
	Photo       *string  `bson:"photo" json:"photo"`
}

// CompanyProfile is the company shape of a profile.
type CompanyProfile struct {
	CompanyName   string  `bson:"company_name" json:"companyName"`
	CompanyNameCI string  `bson:"company_name_ci" json:"-"`
	Description   string  `bson:"description,omitempty" json:"description,omitempty"`
	Website       string  `bson:"website,omitempty" json:"website,omitempty"`
	Location      string  `bson:"location,omitempty" json:"location,omitempty"`
	Logo          *string `bson:"logo" json:"logo"`
}

// DisplayName returns the name other users see for this profile.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	switch {
	case p.Student != nil && p.Student.Name != "":
		return p.Student.Name
	case p.Company != nil && p.Company.CompanyName != "":
		return p.Company.CompanyName
	}
	return ""
}

// Avatar returns the photo or logo reference, if any.
func (p *Profile) Avatar() string {
	if p == nil {
		return ""
	}
	if p.Student != nil && p.Student.Photo != nil {
		return *p.Student.Photo
	}
	if p.Company != nil && p.Company.Logo != nil {
		return *p.Company.Logo
	}
	return ""
}

// Skills returns the student's skill list, or nil for company profiles.
func (p *Profile) Skills() []string {
	if p == nil || p.Student == nil {
		return nil
	}
	return p.Student.Skills
}
