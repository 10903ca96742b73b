package utils

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "b", "c"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := FirstNonEmpty("", ""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	if got := Truncate("héllo wörld", 5); got != "héllo" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("short strings must be returned as is, got %q", got)
	}
	if RuneLen("ü") != 1 {
		t.Fatalf("expected one character")
	}
}

func TestHostname(t *testing.T) {
	cases := map[string]string{
		"https://www.reuters.com/world/x": "reuters.com",
		"https://apnews.com/article/y":    "apnews.com",
		"not a url":                       "",
	}
	for in, want := range cases {
		if got := Hostname(in); got != want {
			t.Fatalf("Hostname(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClampInt(t *testing.T) {
	if ClampInt(0, 1, 5) != 1 || ClampInt(9, 1, 5) != 5 || ClampInt(3, 1, 5) != 3 {
		t.Fatalf("clamp out of range")
	}
}

func TestStr(t *testing.T) {
	if Str(nil) != "" || Str("x") != "x" || Str(3) != "3" {
		t.Fatalf("unexpected Str conversion")
	}
}
