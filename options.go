package shadertoy

import "time"

// Date carries the shader date uniform: year, zero-based month, day of
// month, and seconds since midnight including the fractional part.
type Date [4]float32

// FrameOptions holds the uniform parameters for a single rendered frame.
// The zero value is usable; DefaultFrameOptions fills in the conventional
// Shadertoy defaults.
type FrameOptions struct {
	// Time is the global shader time in seconds (iTime).
	Time float64

	// TimeDelta is the time since the previous frame in seconds.
	TimeDelta float64

	// FrameIndex is the running frame number (iFrame).
	FrameIndex int

	// Framerate is the nominal playback rate in frames per second.
	Framerate float64

	// Mouse is the mouse position uniform as (x, y, z, w).
	Mouse [4]float32

	// Date is the date uniform. When nil, the current local wall clock is
	// decomposed at render time; shaders relying on wall-clock effects get
	// the exact (year, month-1, day, seconds-since-midnight) decomposition.
	Date *Date
}

// DefaultFrameOptions returns options with the conventional defaults:
// a 60 fps clock, a 0.167 s delta, and a neutral mouse.
func DefaultFrameOptions() FrameOptions {
	return FrameOptions{
		Time:      0,
		TimeDelta: 0.167,
		Framerate: 60,
	}
}

// currentDate decomposes t into the shader date uniform. The month is
// zero-based and the seconds field includes the sub-second fraction.
func currentDate(t time.Time) Date {
	secs := float64(t.Hour()*3600+t.Minute()*60+t.Second()) +
		float64(t.Nanosecond())/1e9
	return Date{
		float32(t.Year()),
		float32(int(t.Month()) - 1),
		float32(t.Day()),
		float32(secs),
	}
}
