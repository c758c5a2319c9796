package handler

import (
	"encoding/json"
	"net/http"
)

// GenericResponse is a standard API response structure
type GenericResponse struct {
	Body    any    `json:"body,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// parseBodyAndHandleError parses the request body and writes a 400 on failure
func parseBodyAndHandleError(writer http.ResponseWriter, request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		writeResult(writer, http.StatusBadRequest, GenericResponse{
			Body:    nil,
			Message: "invalid request body",
			Error:   err.Error(),
		})
		return err
	}
	return nil
}

// writeResult writes a JSON response with the given status code
func writeResult(writer http.ResponseWriter, statusCode int, response GenericResponse) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	json.NewEncoder(writer).Encode(response)
}

// writeBytes writes raw bytes with the given status code
func writeBytes(writer http.ResponseWriter, statusCode int, contentType string, data []byte) {
	writer.Header().Set("Content-Type", contentType)
	writer.WriteHeader(statusCode)
	writer.Write(data)
}
