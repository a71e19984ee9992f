package inputval

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user+tag@example.co.uk", true},
		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"  507f1f77bcf86cd799439011  ", true},
		{"507f1f77bcf86cd79943901", false},
		{"507f1f77bcf86cd79943901g", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidObjectID(tt.id); got != tt.want {
			t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	type input struct {
		Title  string `json:"title" validate:"required,max=10" label:"Title"`
		Type   string `json:"type" validate:"required,jobtype" label:"Type"`
		Status string `json:"status" validate:"omitempty,appstatus"`
		JobID  string `json:"jobId" validate:"omitempty,objectid" label:"Job"`
	}

	tests := []struct {
		name      string
		in        input
		wantFirst string
	}{
		{"valid", input{Title: "Intern", Type: "internship"}, ""},
		{"missing title", input{Type: "full-time"}, "Title is required."},
		{"title too long", input{Title: "Senior Staff Engineer", Type: "full-time"}, "Title must be at most 10 characters."},
		{"bad type", input{Title: "Intern", Type: "contract"}, "Type must be one of: internship, full-time."},
		{"json name fallback", input{Title: "Intern", Type: "internship", Status: "pending"}, "status must be one of: shortlisted, rejected."},
		{"bad id", input{Title: "Intern", Type: "internship", JobID: "x"}, "Job must be a valid id."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			if res.HasErrors() != (tt.wantFirst != "") {
				t.Fatalf("HasErrors = %v (%v)", res.HasErrors(), res.Errors)
			}
			if res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
		})
	}
}

func TestResult(t *testing.T) {
	r := &Result{}
	if r.All() != "" || r.First() != "" || r.Err() != nil {
		t.Error("empty result should be silent")
	}
	r.Errors = []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}
	if r.All() != "Error 1; Error 2" {
		t.Errorf("All() = %q", r.All())
	}
	if err := r.Err(); !errors.Is(err, apierr.ErrBadRequest) || err.Error() != "Error 1" {
		t.Errorf("Err() = %v", err)
	}
}

func TestObjectIDParam(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "507f1f77bcf86cd799439011")
	rctx.URLParams.Add("bad", "nope")
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	id, err := ObjectIDParam(r, "id", "job not found")
	if err != nil || id.Hex() != "507f1f77bcf86cd799439011" {
		t.Errorf("ObjectIDParam(id) = %v, %v", id, err)
	}
	if _, err := ObjectIDParam(r, "bad", "job not found"); !errors.Is(err, apierr.ErrNotFound) || err.Error() != "job not found" {
		t.Errorf("ObjectIDParam(bad) = %v", err)
	}
}
