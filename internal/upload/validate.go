package upload

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/EmpoweredVote/DoseRight/internal/utils"
)

const (
	msgNoImage      = "No image uploaded"
	msgNoSelection  = "No image selected"
	msgInvalidType  = "Invalid file type"
	msgFileTooLarge = "File too large"
)

// ErrNoImage is returned when the multipart form has no image part.
var ErrNoImage = utils.BadRequest(msgNoImage)

// Rules are the acceptance limits for uploaded images.
type Rules struct {
	MaxBytes          int64
	AllowedExtensions []string
}

// Check validates an upload by name and size before any bytes are decoded.
func (r Rules) Check(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return utils.BadRequest(msgNoSelection)
	}
	if !r.allowed(filename) {
		return utils.BadRequest(msgInvalidType)
	}
	if r.MaxBytes > 0 && size > r.MaxBytes {
		return TooLarge()
	}
	return nil
}

// TooLarge is the 413 error for oversize uploads.
func TooLarge() error {
	return &utils.ClientInputError{Status: http.StatusRequestEntityTooLarge, Message: msgFileTooLarge}
}

func (r Rules) allowed(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	for _, a := range r.AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}
