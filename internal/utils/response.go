package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

func WriteJSON(w http.ResponseWriter, v any) {
	WriteJSONStatus(w, http.StatusOK, v)
}

// WriteJSONStatus writes v as JSON with a specific HTTP status code.
func WriteJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ClientInputError is a request the caller must fix. Validation failures carry
// every message in Errors.
type ClientInputError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *ClientInputError) Error() string {
	if len(e.Errors) > 0 {
		return strings.Join(e.Errors, "; ")
	}
	return e.Message
}

// BadRequest returns a 400 ClientInputError.
func BadRequest(msg string) *ClientInputError {
	return &ClientInputError{Status: http.StatusBadRequest, Message: msg}
}

// WriteError renders err. Client input errors keep their status and message;
// anything else becomes a 500 with the fallback message.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	var ce *ClientInputError
	if errors.As(err, &ce) {
		body := map[string]any{"success": false, "error": ce.Message}
		if len(ce.Errors) > 0 {
			body["errors"] = ce.Errors
			if ce.Message == "" {
				body["error"] = ce.Errors[0]
			}
		}
		WriteJSONStatus(w, ce.Status, body)
		return
	}
	WriteJSONStatus(w, http.StatusInternalServerError, map[string]any{"success": false, "error": fallback})
}

// Fields reads a flat request body. JSON objects and form encodings are both
// accepted; non-string JSON values are formatted with fmt.
func Fields(r *http.Request) (map[string]string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, BadRequest("Invalid request format")
		}
		out := make(map[string]string, len(raw))
		for k, v := range raw {
			switch tv := v.(type) {
			case nil:
			case string:
				out[k] = tv
			default:
				out[k] = fmt.Sprint(tv)
			}
		}
		return out, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, BadRequest("Invalid request format")
	}
	out := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		out[k] = r.PostForm.Get(k)
	}
	return out, nil
}

// Truthy interprets checkbox and JSON boolean values.
func Truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
