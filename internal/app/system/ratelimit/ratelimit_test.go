package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowAndExpire(t *testing.T) {
	l := New(2, time.Minute)
	defer l.Stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("third request should be limited")
	}
	if !l.Allow("other") {
		t.Fatal("keys must be independent")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow("k") {
		t.Fatal("window should have expired")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Stop()

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("expected limit")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Fatal("reset should clear the window")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("RemoteAddr: got %q", got)
	}
	r.Header.Set("X-Real-IP", "10.0.0.2")
	if got := ClientIP(r); got != "10.0.0.2" {
		t.Errorf("X-Real-IP: got %q", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.3")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("X-Forwarded-For: got %q", got)
	}
}

func TestLoginLimiter_PerEmail(t *testing.T) {
	ll := NewLoginLimiter(10, time.Minute) // 5 per email
	defer ll.Stop()

	r := httptest.NewRequest("POST", "/auth/login", nil)
	for i := 0; i < 5; i++ {
		if ok, _ := ll.Check(r, "A@x.com"); !ok {
			t.Fatalf("attempt %d limited early", i+1)
		}
	}
	if ok, reason := ll.Check(r, "a@x.com "); ok || reason == "" {
		t.Fatal("sixth attempt for same email should be limited")
	}
	ll.Succeeded("a@x.com")
	if ok, _ := ll.Check(r, "a@x.com"); !ok {
		t.Fatal("success should reset the email window")
	}
}
