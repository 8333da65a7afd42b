package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Asia/Riyadh", timezone: "Asia/Riyadh", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 23:30 local on the 5th must stay the 5th, not shift to UTC's date
	in := time.Date(2026, 3, 5, 23, 30, 0, 0, loc)
	got := DateOf(in)
	want := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("DateOf() location = %v, want UTC", got.Location())
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-02-28")
	if err != nil {
		t.Fatalf("ParseDate() unexpected error: %v", err)
	}
	if FormatDate(got) != "2026-02-28" {
		t.Errorf("round trip = %s", FormatDate(got))
	}

	if _, err := ParseDate("28/02/2026"); err == nil {
		t.Error("ParseDate() expected error for bad format")
	}
}

func TestMondayIndex(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2026-10-12", 0}, // Monday
		{"2026-10-16", 4}, // Friday
		{"2026-10-17", 5}, // Saturday
		{"2026-10-18", 6}, // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, _ := ParseDate(tt.date)
			if got := MondayIndex(d); got != tt.want {
				t.Errorf("MondayIndex(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestSlotFromTime(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "00:29", want: 0},
		{in: "00:30", want: 1},
		{in: "09:45", want: 19},
		{in: "23:59", want: 47},
		{in: "25:00", wantErr: true},
		{in: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SlotFromTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SlotFromTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("SlotFromTime(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlotLabel(t *testing.T) {
	tests := []struct {
		slot int
		want string
	}{
		{0, "00:00 - 00:30"},
		{1, "00:30 - 01:00"},
		{19, "09:30 - 10:00"},
		{47, "23:30 - 24:00"},
	}

	for _, tt := range tests {
		if got := SlotLabel(tt.slot); got != tt.want {
			t.Errorf("SlotLabel(%d) = %q, want %q", tt.slot, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2026-10-10")
	b, _ := ParseDate("2026-10-16")
	if got := DaysBetween(a, b); got != 6 {
		t.Errorf("DaysBetween() = %d, want 6", got)
	}
	if got := DaysBetween(b, a); got != -6 {
		t.Errorf("DaysBetween() reversed = %d, want -6", got)
	}
}
