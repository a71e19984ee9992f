package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		url  string
		want Page
	}{
		{"/jobs", Page{1, DefaultLimit}},
		{"/jobs?page=3&limit=20", Page{3, 20}},
		{"/jobs?page=0&limit=-5", Page{1, DefaultLimit}},
		{"/jobs?page=abc&limit=xyz", Page{1, DefaultLimit}},
		{"/jobs?limit=1000", Page{1, MaxLimit}},
		{"/jobs?page=100000000000000000&limit=100", Page{MaxPage, MaxLimit}},
		{"/jobs?page=99999999999999999999999", Page{1, DefaultLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := Parse(httptest.NewRequest("GET", tt.url, nil))
			if got != tt.want {
				t.Errorf("Parse(%s) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestSkipAndTotalPages(t *testing.T) {
	p := Page{Number: 3, Limit: 10}
	if p.Skip() != 20 {
		t.Errorf("Skip = %d, want 20", p.Skip())
	}
	cases := map[int64]int64{0: 0, 1: 1, 10: 1, 11: 2, 100: 10}
	for total, want := range cases {
		if got := p.TotalPages(total); got != want {
			t.Errorf("TotalPages(%d) = %d, want %d", total, got, want)
		}
	}
}

func TestSkip_HugePageStaysPositive(t *testing.T) {
	p := Parse(httptest.NewRequest("GET", "/jobs?page=100000000000000000&limit=100", nil))
	want := int64(MaxPage-1) * MaxLimit
	if got := p.Skip(); got != want {
		t.Errorf("Skip = %d, want %d", got, want)
	}
}
