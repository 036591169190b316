package response

type ErrorResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

func Error(msg any) *ErrorResponse {
	message := "Unknown Error"
	if m, ok := msg.(string); ok {
		message = m
	}
	return &ErrorResponse{
		Success: false,
		Message: &message,
	}
}
