package models

// ApiResponse is the envelope every endpoint answers with.
type ApiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// NewApiResponse builds an envelope; an empty message defaults to "Success".
func NewApiResponse(statusCode int, data any, message string) ApiResponse {
	if message == "" {
		message = "Success"
	}
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// SalesPage is the payload of the sales listing endpoint.
type SalesPage struct {
	TotalResults int64        `json:"totalResults"`
	CurrentPage  int          `json:"currentPage"`
	TotalPages   int          `json:"totalPages"`
	Summary      Summary      `json:"summary"`
	Data         []SaleRecord `json:"data"`
}
