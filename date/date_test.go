package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-05-17", want: New(2024, time.May, 17)},
		{in: "2024-5-7", want: New(2024, time.May, 7)}, // lenient single digits
		{in: "17.05.2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): want error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseStatement(t *testing.T) {
	got, err := ParseStatement("14.03.2025 09:30:00")
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if want := New(2025, time.March, 14); got != want {
		t.Errorf("ParseStatement = %v, want %v", got, want)
	}
	if _, err := ParseStatement("2025-03-14"); err == nil {
		t.Error("ParseStatement accepted an ISO date")
	}
}

func TestPreviousBusinessDay(t *testing.T) {
	testCases := []struct {
		name string
		on   string
		want string
	}{
		{name: "midweek", on: "2025-03-13", want: "2025-03-12"},       // Thu -> Wed
		{name: "monday skips weekend", on: "2025-03-10", want: "2025-03-07"}, // Mon -> Fri
		{name: "sunday", on: "2025-03-09", want: "2025-03-07"},
		{name: "saturday", on: "2025-03-08", want: "2025-03-07"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MustParse(tc.on).PreviousBusinessDay()
			if got.String() != tc.want {
				t.Errorf("PreviousBusinessDay(%s) = %s, want %s", tc.on, got, tc.want)
			}
		})
	}
}

func TestArchiveKey(t *testing.T) {
	if got := MustParse("2024-01-02").ArchiveKey(); got != "20240102" {
		t.Errorf("ArchiveKey = %q, want %q", got, "20240102")
	}
}

func TestNormalization(t *testing.T) {
	// Day arithmetic must normalize across month boundaries.
	if got := New(2024, time.January, 31).Add(1); got != New(2024, time.February, 1) {
		t.Errorf("Add(1) = %v", got)
	}
	if got := New(2024, time.March, 1).Add(-1); got != New(2024, time.February, 29) {
		t.Errorf("Add(-1) = %v (leap year)", got)
	}
}
