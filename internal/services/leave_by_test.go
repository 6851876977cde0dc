package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLeaveBy(t *testing.T) {
	tests := []struct {
		name     string
		arrival  string
		duration int
		buffer   int
		want     string
		ok       bool
	}{
		{name: "absent arrival", arrival: "", duration: 57, buffer: 20},
		{name: "unparseable arrival", arrival: "tomorrow at four", duration: 57, buffer: 20},
		{name: "offset preserved", arrival: "2025-11-08T16:00:00-05:00", duration: 57, buffer: 20, want: "2025-11-08T14:43:00-05:00", ok: true},
		{name: "naive stays naive", arrival: "2025-11-08T16:00:00", duration: 30, want: "2025-11-08T15:30:00", ok: true},
		{name: "zulu rendered as offset", arrival: "2025-11-08T16:00:00Z", buffer: 20, want: "2025-11-08T15:40:00+00:00", ok: true},
		{name: "crosses midnight", arrival: "2025-11-08T00:30:00+01:00", duration: 45, want: "2025-11-07T23:45:00+01:00", ok: true},
		{name: "fractional seconds kept", arrival: "2025-11-08T16:00:00.250000", duration: 10, want: "2025-11-08T15:50:00.250000", ok: true},
		{name: "space separator", arrival: "2025-11-08 16:00:00", want: "2025-11-08T16:00:00", ok: true},
		{name: "hour only", arrival: "2025-11-08T16", duration: 57, buffer: 20, want: "2025-11-08T14:43:00", ok: true},
		{name: "hour offset", arrival: "2025-11-08T16:00:00-05", duration: 57, buffer: 20, want: "2025-11-08T14:43:00-05:00", ok: true},
		{name: "date only", arrival: "2025-11-08", duration: 60, want: "2025-11-07T23:00:00", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeLeaveBy(tt.arrival, tt.duration, tt.buffer)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
