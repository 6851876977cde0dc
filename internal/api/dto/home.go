package dto

type SetHomeRequest struct {
	Address *string `json:"address"`
}

type SetHomeResponse struct {
	OK          bool   `json:"ok"`
	HomeAddress string `json:"home_address"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	MockMode bool   `json:"mock_mode"`
}
