package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatViewCount(t *testing.T) {
	tests := []struct {
		want  string
		views int64
	}{
		{want: "0", views: 0},
		{want: "999", views: 999},
		{want: "1.0K", views: 1000},
		{want: "1.5K", views: 1500},
		{want: "999.9K", views: 999_900},
		{want: "1.0M", views: 1_000_000},
		{want: "2.5M", views: 2_500_000},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatViewCount(tt.views))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		seconds float64
	}{
		{name: "zero", want: "0:00", seconds: 0},
		{name: "negative", want: "0:00", seconds: -5},
		{name: "seconds", want: "0:07", seconds: 7},
		{name: "fraction", want: "1:05", seconds: 65.9},
		{name: "minutes", want: "12:30", seconds: 750},
		{name: "hours", want: "1:01:01", seconds: 3661},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "hello...", Truncate("hello world", 5))
	assert.Equal(t, "при...", Truncate("привет", 3))
	assert.Equal(t, "...", Truncate("abc", 0))
}
