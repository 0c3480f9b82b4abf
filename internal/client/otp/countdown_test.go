package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown_Remaining(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewCountdown(start, 30*time.Second)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"at start", 0, 30},
		{"partial second", 900 * time.Millisecond, 30},
		{"one second", time.Second, 29},
		{"late tick", 2500 * time.Millisecond, 28},
		{"almost done", 29*time.Second + 999*time.Millisecond, 1},
		{"done", 30 * time.Second, 0},
		{"past end", 5 * time.Minute, 0},
		{"clock behind start", -time.Second, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Remaining(start.Add(tt.elapsed)))
		})
	}
}

func TestCountdown_SkippedTicksDoNotDrift(t *testing.T) {
	start := time.Now()
	c := NewCountdown(start, 30*time.Second)

	assert.Equal(t, 20, c.Remaining(start.Add(10*time.Second)))
	assert.False(t, c.Done(start.Add(29*time.Second)))
	assert.True(t, c.Done(start.Add(30*time.Second)))
}
