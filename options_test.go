package shadertoy

import (
	"testing"
	"time"
)

func TestCurrentDate(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want Date
	}{
		{
			"midnight new year",
			time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			Date{2026, 0, 1, 0},
		},
		{
			"afternoon with fraction",
			time.Date(2026, time.August, 25, 13, 30, 15, 500_000_000, time.UTC),
			Date{2026, 7, 25, 13*3600 + 30*60 + 15.5},
		},
		{
			"last second of the year",
			time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC),
			Date{1999, 11, 31, 23*3600 + 59*60 + 59},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := currentDate(tt.time); got != tt.want {
				t.Errorf("currentDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultFrameOptions(t *testing.T) {
	opts := DefaultFrameOptions()
	if opts.Framerate != 60 {
		t.Errorf("Framerate = %g, want 60", opts.Framerate)
	}
	if opts.TimeDelta != 0.167 {
		t.Errorf("TimeDelta = %g, want 0.167", opts.TimeDelta)
	}
	if opts.Date != nil {
		t.Error("Date should default to nil so render time fills it")
	}
}
