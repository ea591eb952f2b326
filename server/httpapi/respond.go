package httpapi

// statusBody is the error/status envelope shared by all JSON responses.
type statusBody struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func errorBody(message string) statusBody {
	return statusBody{Status: "error", Message: message}
}
