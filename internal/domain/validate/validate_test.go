package validate

import (
	"strconv"
	"testing"
)

func TestCleanIntegerValid(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1", "1"},
		{"10", "10"},
		{"12", "12"},
		{"012", "12"},
		{" 12", "12"},
		{" 1 ", "1"},
		{"010 ", "10"},
		{"\t010 ", "10"},
		{"+7", "7"},
	}
	for _, c := range cases {
		if got := CleanInteger(c.raw, 1, 12); got != c.want {
			t.Errorf("CleanInteger(%q, 1, 12) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestCleanIntegerInvalid(t *testing.T) {
	cases := []string{
		"", " ", "    ", `\t`, "\t", `\b`, "\b",
		"-1", "0", "13", "14", "65536",
		"a13", "z", "!", "??", "NULL", "N/A", "1.5",
	}
	for _, raw := range cases {
		if got := CleanInteger(raw, 1, 12); got != "" {
			t.Errorf("CleanInteger(%q, 1, 12) = %q, want empty", raw, got)
		}
	}
}

func TestCleanIntegerRangeProperty(t *testing.T) {
	// Every in-range integer round-trips to its canonical form; every
	// out-of-range integer nulls out.
	for n := -50; n <= 50; n++ {
		s := strconv.Itoa(n)
		got := CleanInteger(s, 1, 12)
		if n >= 1 && n <= 12 {
			if got != s {
				t.Errorf("CleanInteger(%d) = %q, want %q", n, got, s)
			}
		} else if got != "" {
			t.Errorf("CleanInteger(%d) = %q, want empty", n, got)
		}
	}
}

func TestCleanMonthAndYearBounds(t *testing.T) {
	if got := CleanMonth("13"); got != "" {
		t.Errorf("CleanMonth(13) = %q, want empty", got)
	}
	if got := CleanMonth("02"); got != "2" {
		t.Errorf("CleanMonth(02) = %q, want 2", got)
	}
	if got := CleanYear("1850"); got != "" {
		t.Errorf("CleanYear(1850) = %q, want empty", got)
	}
	if got := CleanYear("2011"); got != "" {
		t.Errorf("CleanYear(2011) = %q, want empty", got)
	}
	if got := CleanYear("1990"); got != "1990" {
		t.Errorf("CleanYear(1990) = %q, want 1990", got)
	}
	if got := CleanYear("1902"); got != "1902" {
		t.Errorf("CleanYear(1902) = %q, want 1902", got)
	}
	if got := CleanYear("2010"); got != "2010" {
		t.Errorf("CleanYear(2010) = %q, want 2010", got)
	}
}
