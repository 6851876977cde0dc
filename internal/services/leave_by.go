package services

import (
	"time"

	"mobility-context-service/internal/domain"
)

// ComputeLeaveBy returns the latest departure time that still reaches the
// destination by arrivalISO with bufferMin minutes to spare.
//
// The boolean is false when arrivalISO is empty or unparseable; callers
// treat that as "no recommendation", never as a failure.
func ComputeLeaveBy(arrivalISO string, durationMin int, bufferMin int) (string, bool) {
	if arrivalISO == "" {
		return "", false
	}

	arrival, aware, err := domain.ParseISO(arrivalISO)
	if err != nil {
		return "", false
	}

	leaveBy := arrival.Add(-time.Duration(durationMin+bufferMin) * time.Minute)
	return domain.FormatISO(leaveBy, aware), true
}
