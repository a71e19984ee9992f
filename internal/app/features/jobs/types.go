// internal/app/features/jobs/types.go
package jobs

import (
	"strings"
	"time"

	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
)

type listResponse struct {
	Jobs        []viewdata.JobView `json:"jobs"`
	TotalPages  int64              `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	Total       int64              `json:"total"`
}

type createInput struct {
	Title        string `json:"title" validate:"notblank,max=200" label:"Title"`
	Type         string `json:"type" validate:"required,jobtype" label:"Type"`
	Description  string `json:"description" validate:"notblank,max=10000" label:"Description"`
	Requirements string `json:"requirements" validate:"max=10000" label:"Requirements"`
	Location     string `json:"location" validate:"max=200" label:"Location"`
	Salary       string `json:"salary" validate:"max=100" label:"Salary"`
	Deadline     string `json:"deadline"`
}

func (in createInput) job() (models.Job, error) {
	j := models.Job{
		Title:        strings.TrimSpace(in.Title),
		Type:         in.Type,
		Description:  strings.TrimSpace(in.Description),
		Requirements: strings.TrimSpace(in.Requirements),
		Location:     strings.TrimSpace(in.Location),
		Salary:       strings.TrimSpace(in.Salary),
	}
	if in.Deadline != "" {
		d, err := parseDeadline(in.Deadline)
		if err != nil {
			return models.Job{}, err
		}
		j.Deadline = &d
	}
	return j, nil
}

// updateInput is a partial update; absent fields are left alone and an
// empty deadline string removes the deadline.
type updateInput struct {
	Title        *string `json:"title" validate:"omitempty,notblank,max=200" label:"Title"`
	Type         *string `json:"type" validate:"omitempty,jobtype" label:"Type"`
	Description  *string `json:"description" validate:"omitempty,notblank,max=10000" label:"Description"`
	Requirements *string `json:"requirements" validate:"omitempty,max=10000" label:"Requirements"`
	Location     *string `json:"location" validate:"omitempty,max=200" label:"Location"`
	Salary       *string `json:"salary" validate:"omitempty,max=100" label:"Salary"`
	Deadline     *string `json:"deadline"`
	IsActive     *bool   `json:"isActive"`
}

func (in updateInput) patch() (jobstore.Patch, error) {
	p := jobstore.Patch{
		Title:        trimmed(in.Title),
		Type:         in.Type,
		Description:  trimmed(in.Description),
		Requirements: trimmed(in.Requirements),
		Location:     trimmed(in.Location),
		Salary:       trimmed(in.Salary),
		IsActive:     in.IsActive,
	}
	if in.Deadline != nil {
		if strings.TrimSpace(*in.Deadline) == "" {
			p.ClearDeadline = true
		} else {
			d, err := parseDeadline(*in.Deadline)
			if err != nil {
				return jobstore.Patch{}, err
			}
			p.Deadline = &d
		}
	}
	return p, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// parseDeadline accepts an RFC 3339 timestamp or a bare date.
func parseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apierr.BadRequest("Deadline must be a date (YYYY-MM-DD) or an RFC 3339 timestamp.")
}

// applicantView is one application to a company's job, with the
// student's profile as it is now.
type applicantView struct {
	models.Application
	Student viewdata.Person `json:"student"`
	Profile *models.Profile `json:"profile"`
}
