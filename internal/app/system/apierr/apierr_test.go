package apierr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"go.uber.org/zap"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", apierr.BadRequest("x"), http.StatusBadRequest},
		{"conflict reported as 400", apierr.Conflict("x"), http.StatusBadRequest},
		{"unauthorized", apierr.Unauthorized("x"), http.StatusUnauthorized},
		{"forbidden", apierr.Forbidden("x"), http.StatusForbidden},
		{"not found", apierr.NotFound("x"), http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", apierr.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apierr.Status(tt.err); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrite_BodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Write(rec, zap.NewNop(), apierr.Forbidden("not your job"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "not your job" {
		t.Errorf("message: got %q", body["message"])
	}
}

func TestWrite_InternalKeepsUnderlyingMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Write(rec, zap.NewNop(), errors.New("connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("body should carry the store message, got %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		JobID string `json:"jobId"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"jobId":"abc"}`))
	if err := apierr.DecodeJSON(req, &dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if dst.JobID != "abc" {
		t.Errorf("JobID = %q", dst.JobID)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	if err := apierr.DecodeJSON(req, &dst); !errors.Is(err, apierr.ErrBadRequest) {
		t.Errorf("malformed body: got %v, want bad request", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	if err := apierr.DecodeJSON(req, &dst); !errors.Is(err, apierr.ErrBadRequest) {
		t.Errorf("empty body: got %v, want bad request", err)
	}
}
