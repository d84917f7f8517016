package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Error writes the failure envelope every endpoint shares. Clients rely
// on the "error" field always being populated.
func Error(w http.ResponseWriter, statusCode int, message string) {
	if message == "" {
		message = "erro interno"
	}
	JSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// Success writes the data as-is with 200; list endpoints answer with the
// bare ordered sequence the storefront clients decode.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created writes the created entity with 201
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a no content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
