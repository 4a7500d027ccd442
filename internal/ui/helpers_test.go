package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("hello world", 5); got != "hell…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("héllo wörld", 5); got != "héll…" {
		t.Fatalf("multibyte truncate = %q", got)
	}
	if got := truncate("x", 0); got != "" {
		t.Fatalf("zero width = %q", got)
	}
	if got := truncate("xy", 1); got != "…" {
		t.Fatalf("width one = %q", got)
	}
}

func TestPad(t *testing.T) {
	t.Parallel()

	if got := pad("ab", 4); got != "ab  " {
		t.Fatalf("pad = %q", got)
	}
	if got := pad("abcd", 2); got != "abcd" {
		t.Fatalf("pad must not shorten: %q", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	t.Parallel()

	if got := joinNonEmpty("  ", "a", "", " ", "b"); got != "a  b" {
		t.Fatalf("joinNonEmpty = %q", got)
	}
	if got := joinNonEmpty(",", "", ""); got != "" {
		t.Fatalf("joinNonEmpty = %q", got)
	}
}

func TestFormatUploadedAt(t *testing.T) {
	t.Parallel()

	if got := formatUploadedAt(time.Time{}); got != "unknown" {
		t.Fatalf("zero time = %q", got)
	}
	if got := formatUploadedAt(time.Now().Add(-time.Minute)); got != "just now" {
		t.Fatalf("recent = %q", got)
	}
	old := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	if got := formatUploadedAt(old); got != "2024-03-09" {
		t.Fatalf("old = %q", got)
	}
}

func TestClampAndAt(t *testing.T) {
	t.Parallel()

	if got := clamp(5, 0, 3); got != 3 {
		t.Fatalf("clamp = %d", got)
	}
	if got := clamp(-2, 0, 3); got != 0 {
		t.Fatalf("clamp = %d", got)
	}
	// Empty lists clamp to index 0 and at reports absence.
	if got := clamp(0, 0, -1); got != 0 {
		t.Fatalf("clamp on empty range = %d", got)
	}

	items := []string{"a", "b"}
	if v, ok := at(items, 1); !ok || v != "b" {
		t.Fatalf("at = %q, %v", v, ok)
	}
	if _, ok := at(items, 2); ok {
		t.Fatal("at accepted out-of-range index")
	}
	if _, ok := at([]string(nil), 0); ok {
		t.Fatal("at accepted empty slice")
	}
}
