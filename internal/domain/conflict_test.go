package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConflict_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 7, 1, h, m, 0, 0, time.UTC) }
	slotStart, slotEnd := at(14, 0), at(16, 0)

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{name: "covers slot", start: at(13, 0), end: at(17, 30), want: true},
		{name: "inside slot", start: at(14, 30), end: at(15, 0), want: true},
		{name: "overlaps start", start: at(13, 0), end: at(14, 1), want: true},
		{name: "overlaps end", start: at(15, 59), end: at(17, 0), want: true},
		{name: "ends at slot start", start: at(12, 0), end: at(14, 0), want: false},
		{name: "starts at slot end", start: at(16, 0), end: at(18, 0), want: false},
		{name: "well before", start: at(8, 0), end: at(9, 0), want: false},
		{name: "well after", start: at(19, 0), end: at(20, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Conflict{StartTime: tt.start, EndTime: tt.end}
			assert.Equal(t, tt.want, c.Overlaps(slotStart, slotEnd))
		})
	}
}

func TestConflict_Overlaps_DifferentZones(t *testing.T) {
	eastern, _ := time.LoadLocation("America/New_York")

	slotStart := time.Date(2024, 1, 8, 14, 0, 0, 0, eastern)
	slotEnd := time.Date(2024, 1, 8, 16, 0, 0, 0, eastern)

	// 19:00-21:00 UTC == 14:00-16:00 EST
	c := &Conflict{
		StartTime: time.Date(2024, 1, 8, 19, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 8, 21, 0, 0, 0, time.UTC),
	}
	assert.True(t, c.Overlaps(slotStart, slotEnd))

	// 21:00-22:00 UTC начинается ровно в конце слота
	c = &Conflict{
		StartTime: time.Date(2024, 1, 8, 21, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 8, 22, 0, 0, 0, time.UTC),
	}
	assert.False(t, c.Overlaps(slotStart, slotEnd))
}

func TestInterview_IsActive(t *testing.T) {
	assert.True(t, (&Interview{}).IsActive())
	assert.False(t, (&Interview{Canceled: true}).IsActive())
}
