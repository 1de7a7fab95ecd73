package utils

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	ts := time.Date(2024, time.February, 17, 13, 4, 5, 0, time.UTC)

	if got := MonthStart(ts); !got.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("MonthStart() = %v", got)
	}
	wantEnd := time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC)
	if got := MonthEnd(ts); !got.Equal(wantEnd) {
		t.Errorf("MonthEnd() = %v, want %v", got, wantEnd)
	}
	if got := EndOfDay(ts); !got.Equal(time.Date(2024, 2, 17, 23, 59, 59, 999999000, time.UTC)) {
		t.Errorf("EndOfDay() = %v", got)
	}
	if !IsMidnight(StartOfDay(ts)) || IsMidnight(ts) {
		t.Error("IsMidnight() mismatch")
	}
	if got := YearEnd(2024, time.UTC); got.Year() != 2024 || got.Month() != time.December || got.Day() != 31 {
		t.Errorf("YearEnd() = %v", got)
	}
}

func TestLastMonths(t *testing.T) {
	got := LastMonths(6, time.February, 2024, time.UTC)
	if len(got) != 6 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Year() != 2023 || got[0].Month() != time.September {
		t.Errorf("first = %v, want September 2023", got[0])
	}
	if got[5].Year() != 2024 || got[5].Month() != time.February {
		t.Errorf("last = %v, want February 2024", got[5])
	}
}

func TestMaskEmail(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"budi@dinas.go.id": "b***@dinas.go.id",
		"b@dinas.go.id":    "***@dinas.go.id",
		"not-an-email":     "***",
	}
	for in, want := range tests {
		if got := MaskEmail(in); got != want {
			t.Errorf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		e164  string
	}{
		{"081234567890", true, "+6281234567890"},
		{"+62 812-3456-7890", true, "+6281234567890"},
		{"(021) 3456789", true, "+62213456789"},
		{"12", false, "12"},
		{"bukan nomor", false, "bukan nomor"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidPhone(tt.in); got != tt.valid {
				t.Errorf("IsValidPhone() = %v, want %v", got, tt.valid)
			}
			if got := NormalizePhone(tt.in); got != tt.e164 {
				t.Errorf("NormalizePhone() = %q, want %q", got, tt.e164)
			}
		})
	}
}
