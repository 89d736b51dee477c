package validate

import (
	"strings"
	"testing"

	"github.com/taskhub/task-api/internal/core/domain"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"bob.smith+tag@sub.domain.org",
		"x_1@a-b.co",
	}
	for _, e := range valid {
		if !Email(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"alice@",
		"alice@localhost",
		"alice example@example.com",
	}
	for _, e := range invalid {
		if Email(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password("Passw0rd"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}

	cases := map[string]string{
		"":         "required",
		"Sh0rt":    "8 characters",
		"passw0rd": "uppercase",
		"PASSW0RD": "lowercase",
		"Password": "digit",
	}
	for pw, want := range cases {
		err := Password(pw)
		if err == nil {
			t.Errorf("expected %q to be rejected", pw)
			continue
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("password %q: expected message containing %q, got %q", pw, want, err.Error())
		}
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("  hello  "); got != "hello" {
		t.Errorf("expected trimmed, got %q", got)
	}
	if got := Sanitize(`<script>alert("x")</script>`); strings.ContainsAny(got, "<>\"") {
		t.Errorf("expected HTML escaped, got %q", got)
	}
}

func TestTaskStatus(t *testing.T) {
	for _, s := range []string{"pending", "in_progress", "completed", "cancelled"} {
		if _, err := TaskStatus(s); err != nil {
			t.Errorf("expected %q to be valid, got %v", s, err)
		}
	}

	_, err := TaskStatus("bogus")
	if err == nil {
		t.Fatal("expected error for bogus status")
	}
	// The error message lists every valid value.
	for _, s := range []string{"pending", "in_progress", "completed", "cancelled"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("expected message to list %q, got %q", s, err.Error())
		}
	}
}

func TestTaskTitle(t *testing.T) {
	if err := TaskTitle("Buy milk"); err != nil {
		t.Fatalf("expected valid title, got %v", err)
	}
	if err := TaskTitle(""); err == nil {
		t.Fatal("expected error for empty title")
	}
	if err := TaskTitle(strings.Repeat("a", domain.MaxTitleLength+1)); err == nil {
		t.Fatal("expected error for oversized title")
	}
	if err := TaskTitle(strings.Repeat("a", domain.MaxTitleLength)); err != nil {
		t.Fatalf("expected 200-char title to be valid, got %v", err)
	}
}
