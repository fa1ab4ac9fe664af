package logger

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	if got := Status(nil); got != "ok" {
		t.Fatalf("Status(nil) = %q", got)
	}
	if got := Status(errors.New("boom")); got != "error" {
		t.Fatalf("Status(err) = %q", got)
	}
}

func TestRoundMS(t *testing.T) {
	if got := RoundMS(-time.Second); got != 0 {
		t.Fatalf("RoundMS(negative) = %v", got)
	}
	if got := RoundMS(1499 * time.Microsecond); got != time.Millisecond {
		t.Fatalf("RoundMS = %v", got)
	}
}

func TestSanitizeLimitFlattensControls(t *testing.T) {
	got := SanitizeLimit("стих\nо\tдвух\rстроках", 100)
	if strings.ContainsAny(got, "\n\r\t") {
		t.Fatalf("control characters survived: %q", got)
	}
}

func TestSanitizeLimitRuneSafe(t *testing.T) {
	// Cyrillic text must be cut at rune boundaries, never mid-character.
	got := SanitizeLimit(strings.Repeat("я", 10), 4)
	if got != "яяяя..." {
		t.Fatalf("SanitizeLimit = %q", got)
	}
}

func TestSummarizeStrings(t *testing.T) {
	joined, truncated := SummarizeStrings([]string{"a", "b", "c"}, 2)
	if joined != "a, b" || !truncated {
		t.Fatalf("SummarizeStrings = %q, %v", joined, truncated)
	}
	joined, truncated = SummarizeStrings([]string{"a"}, 2)
	if joined != "a" || truncated {
		t.Fatalf("SummarizeStrings = %q, %v", joined, truncated)
	}
}
