package reward

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 4, 5, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	monday := day(2026, time.March, 2)
	tuesday := day(2026, time.March, 3)
	thursday := day(2026, time.March, 5)

	tests := []struct {
		name         string
		today        time.Time
		last         *time.Time
		current      int
		wantStreak   int
		wantAdvanced bool
	}{
		{"first ever study day", tuesday, nil, 0, 1, true},
		{"same day is a no-op", monday, &monday, 4, 4, false},
		{"consecutive day increments", tuesday, &monday, 4, 5, true},
		{"two-day gap resets", thursday, &tuesday, 9, 1, true},
		{"long gap resets", day(2026, time.June, 1), &monday, 30, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextStreak(tt.today, tt.last, tt.current)
			if got.streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", got.streak, tt.wantStreak)
			}
			if got.advanced != tt.wantAdvanced {
				t.Errorf("advanced = %v, want %v", got.advanced, tt.wantAdvanced)
			}
		})
	}
}

func TestNextStreakAcrossMonthBoundary(t *testing.T) {
	jan31 := day(2026, time.January, 31)
	feb1 := day(2026, time.February, 1)
	got := nextStreak(feb1, &jan31, 6)
	if got.streak != 7 || !got.advanced {
		t.Errorf("month boundary: got streak=%d advanced=%v, want 7 true", got.streak, got.advanced)
	}
}

func TestStreakBonus(t *testing.T) {
	tests := []struct {
		streak int
		want   int
	}{
		{1, 0},
		{2, 10},
		{3, 20},
		{10, 90},
		{30, 290},
		{31, 290}, // capped
		{100, 290},
	}
	for _, tt := range tests {
		if got := StreakBonus(tt.streak); got != tt.want {
			t.Errorf("StreakBonus(%d) = %d, want %d", tt.streak, got, tt.want)
		}
	}
}
