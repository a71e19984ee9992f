// internal/app/features/profiles/types.go
package profiles

import (
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// studentInput is the PUT body for a student. The whole profile is
// replaced, so omitted fields are cleared.
type studentInput struct {
	Name        string   `json:"name" validate:"notblank,max=120" label:"Name"`
	Institution string   `json:"institution" validate:"max=200" label:"Institution"`
	Department  string   `json:"department" validate:"max=200" label:"Department"`
	Bio         string   `json:"bio" validate:"max=2000" label:"Bio"`
	Skills      []string `json:"skills" validate:"max=50,dive,max=60" label:"Skills"`
	Resume      *string  `json:"resume"`
	Photo       *string  `json:"photo"`
}

func (in studentInput) profile(userID primitive.ObjectID) models.Profile {
	return models.Profile{
		UserID: userID,
		Kind:   models.ProfileKindStudent,
		Student: &models.StudentProfile{
			Name:        in.Name,
			Institution: in.Institution,
			Department:  in.Department,
			Bio:         in.Bio,
			Skills:      in.Skills,
			Resume:      in.Resume,
			Photo:       in.Photo,
		},
	}
}

// companyInput is the PUT body for a company.
type companyInput struct {
	CompanyName string  `json:"companyName" validate:"notblank,max=120" label:"Company name"`
	Description string  `json:"description" validate:"max=4000" label:"Description"`
	Website     string  `json:"website" validate:"omitempty,url" label:"Website"`
	Location    string  `json:"location" validate:"max=200" label:"Location"`
	Logo        *string `json:"logo"`
}

func (in companyInput) profile(userID primitive.ObjectID) models.Profile {
	return models.Profile{
		UserID: userID,
		Kind:   models.ProfileKindCompany,
		Company: &models.CompanyProfile{
			CompanyName: in.CompanyName,
			Description: in.Description,
			Website:     in.Website,
			Location:    in.Location,
			Logo:        in.Logo,
		},
	}
}

// publicUser is the part of a user shown next to their public profile.
type publicUser struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
}

type publicProfile struct {
	User    publicUser      `json:"user"`
	Profile *models.Profile `json:"profile"`
}
