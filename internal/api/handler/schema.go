package handler

// envelope is embedded in every success response.
type envelope struct {
	Success bool `json:"success" example:"true"`
}

var success = envelope{Success: true}

type messageResponse struct {
	envelope
	Message string `json:"message"`
}

// errorResponse documents the failure envelope rendered by the error handler.
type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func done(msg string) messageResponse {
	return messageResponse{envelope: success, Message: msg}
}
