package normalize

import (
	"reflect"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Email(tt.input)
			if got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ada Lovelace", "Ada Lovelace"},
		{"  Ada   Lovelace  ", "Ada Lovelace"},
		{"", ""},
		{"ACME Corp", "ACME Corp"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Name(tt.input)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSkills(t *testing.T) {
	got := Skills([]string{" Go ", "", "go", "React", "  ", "Machine   Learning"})
	want := []string{"Go", "React", "Machine Learning"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Skills() = %v, want %v", got, want)
	}
}

func TestSkills_Nil(t *testing.T) {
	got := Skills(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Skills(nil) = %#v, want empty non-nil slice", got)
	}
}
