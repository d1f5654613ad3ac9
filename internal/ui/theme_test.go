package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Midnight" || names[1] != "Daylight" {
		t.Fatalf("ThemeNames() = %v, want [Midnight Daylight]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Midnight"); got != "Daylight" {
		t.Fatalf("NextTheme(Midnight) = %q, want Daylight", got)
	}
	if got := NextTheme("Daylight"); got != "Midnight" {
		t.Fatalf("NextTheme(Daylight) = %q, want Midnight", got)
	}
	if got := NextTheme("Unknown"); got != "Midnight" {
		t.Fatalf("NextTheme(Unknown) = %q, want Midnight", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Daylight").Name; got != "Daylight" {
		t.Fatalf("GetTheme(Daylight).Name = %q", got)
	}
	if got := GetTheme("Unknown").Name; got != "Midnight" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Midnight (fallback)", got)
	}
}
