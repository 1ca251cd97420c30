package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Created writes the 201 body used by create endpoints: {"message", <key>: record}.
func Created(w http.ResponseWriter, message, key string, record interface{}) {
	JSON(w, http.StatusCreated, map[string]interface{}{
		"message": message,
		key:       record,
	})
}
