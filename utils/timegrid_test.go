package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlignToInterval(t *testing.T) {
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name     string
		input    time.Time
		interval int
		want     time.Time
	}{
		{
			name:     "floors into previous half hour",
			input:    time.Date(2025, 1, 1, 9, 14, 0, 0, time.UTC),
			interval: 30,
			want:     time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "boundary is unchanged",
			input:    time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC),
			interval: 30,
			want:     time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:     "seconds and nanos dropped on boundary",
			input:    time.Date(2025, 1, 1, 9, 30, 42, 999, time.UTC),
			interval: 30,
			want:     time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:     "fifteen minute grid",
			input:    time.Date(2025, 1, 1, 9, 59, 0, 0, time.UTC),
			interval: 15,
			want:     time.Date(2025, 1, 1, 9, 45, 0, 0, time.UTC),
		},
		{
			name:     "sixty minute grid floors to the hour",
			input:    time.Date(2025, 1, 1, 9, 59, 59, 0, time.UTC),
			interval: 60,
			want:     time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "location is preserved",
			input:    time.Date(2025, 1, 1, 9, 44, 0, 0, nairobi),
			interval: 30,
			want:     time.Date(2025, 1, 1, 9, 30, 0, 0, nairobi),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignToInterval(tt.input, tt.interval)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, tt.want.Location(), got.Location())
		})
	}
}

func TestAlignToIntervalIdempotent(t *testing.T) {
	input := time.Date(2025, 6, 15, 14, 23, 51, 12345, time.UTC)
	for _, interval := range []int{5, 15, 30, 60} {
		once := AlignToInterval(input, interval)
		twice := AlignToInterval(once, interval)
		assert.True(t, once.Equal(twice), "interval %d: %v realigned to %v", interval, once, twice)
	}
}
