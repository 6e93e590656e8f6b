// Package web enables consistent responses across all handlers.
package web

// JSONError provides a type for explicit json encoded error responses.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into a json friendly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}
