// Package response implements the uniform API envelope: every handled
// response carries {message, data, statusCode}, with the HTTP status set to
// match statusCode.
package response

import (
	"encoding/json"
	"net/http"
)

type Envelope struct {
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	StatusCode int         `json:"statusCode"`
}

func Success(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, message, data)
}

func Error(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, status, message, data)
}

func write(w http.ResponseWriter, status int, message string, data interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		Message:    message,
		Data:       data,
		StatusCode: status,
	})
}
