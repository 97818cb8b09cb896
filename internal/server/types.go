package server

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// CalculateParseError is a query parameter error with its HTTP status.
type CalculateParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e CalculateParseError) Error() string {
	return e.Message
}
