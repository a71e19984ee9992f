// Package inputval validates decoded request bodies and path parameters.
//
// Request structs declare their rules with `validate` tags and name
// themselves in messages with a `label` tag:
//
//	type createJobInput struct {
//		Title string `json:"title" validate:"required,max=200" label:"Title"`
//		Type  string `json:"type" validate:"required,jobtype" label:"Type"`
//	}
package inputval

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		if name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return IsValidObjectID(fl.Field().String())
	})
	_ = v.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		return models.IsValidJobType(fl.Field().String())
	})
	_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
		return models.IsSettableStatus(fl.Field().String())
	})
	_ = v.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == models.MediaImage || s == models.MediaVideo
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures of one Validate call.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Err returns the first failure as a BadRequest, or nil.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return apierr.BadRequest(r.First())
}

// Validate checks s against its validate tags.
func Validate(s any) *Result {
	res := &Result{}
	err := validate.Struct(s)
	if err == nil {
		return res
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required", "notblank", "required_if":
		return label + " is required."
	case "required_without":
		return label + " is required when " + fe.Param() + " is empty."
	case "email":
		return "A valid email address is required."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "objectid":
		return label + " must be a valid id."
	case "jobtype":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(models.JobTypes, ", "))
	case "appstatus":
		return fmt.Sprintf("%s must be one of: %s, %s.", label, models.ApplicationShortlisted, models.ApplicationRejected)
	case "mediatype":
		return fmt.Sprintf("%s must be one of: %s, %s.", label, models.MediaImage, models.MediaVideo)
	case "url", "http_url":
		return label + " must be a valid URL."
	}
	return fmt.Sprintf("%s is invalid (%s).", label, fe.Tag())
}

// IsValidEmail reports whether s is a bare address (no display name).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && validate.Var(s, "email") == nil
}

// IsValidObjectID reports whether s (trimmed) is a 24-hex-digit ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// ObjectIDParam parses the chi URL parameter name as an ObjectID. A
// malformed id cannot name an existing document, so it is reported as
// NotFound with notFoundMsg.
func ObjectIDParam(r *http.Request, name, notFoundMsg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, name)))
	if err != nil {
		return primitive.NilObjectID, apierr.NotFound(notFoundMsg)
	}
	return id, nil
}
