package models

// APIResponse is the envelope of every successful response.
// swagger:model APIResponse
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// APIError is the envelope of every error response.
// swagger:model APIError
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}
