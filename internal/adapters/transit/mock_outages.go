package transit

import "context"

var mockStatuses = map[string]string{
	"86 St (Q)":             "Elevator outage",
	"59 St-Columbus Circle": "Accessibility equipment outage",
}

// MockOutages serves a fixed pair of demo outages.
type MockOutages struct{}

func NewMockOutages() *MockOutages {
	return &MockOutages{}
}

func (m *MockOutages) OutagesAffecting(_ context.Context, stations []string) ([]string, error) {
	return matchStations(mockStatuses, stations), nil
}
